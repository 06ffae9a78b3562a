package rest

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// VideoService is the part of the application service the API calls
type VideoService interface {
	CreateVideo(ctx context.Context, cmd app.CreateVideoCommand) (*catalog.Video, error)
	UpdateVideo(ctx context.Context, cmd app.UpdateVideoCommand) (*catalog.Video, error)
	UploadMedias(ctx context.Context, cmd app.UploadMediasCommand) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	GetVideo(ctx context.Context, id uuid.UUID) (*catalog.Video, error)
}

// mediaTypes maps the URL media type to the command field it fills
var mediaTypes = map[string]func(*app.UploadMediasCommand, *app.FileInput){
	"banner":         func(c *app.UploadMediasCommand, f *app.FileInput) { c.Banner = f },
	"thumbnail":      func(c *app.UploadMediasCommand, f *app.FileInput) { c.Thumb = f },
	"thumbnail_half": func(c *app.UploadMediasCommand, f *app.FileInput) { c.ThumbHalf = f },
	"trailer":        func(c *app.UploadMediasCommand, f *app.FileInput) { c.Trailer = f },
	"video":          func(c *app.UploadMediasCommand, f *app.FileInput) { c.Media = f },
}

type videoHandler struct {
	service VideoService
}

func (h *videoHandler) create(c *gin.Context) {
	var req videoRequest
	files := map[string]*app.FileInput{}

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := json.Unmarshal([]byte(c.PostForm("metadata")), &req); err != nil {
			abortWithProblem(c, http.StatusBadRequest, "metadata must be a JSON object")
			return
		}
		for _, field := range []string{"banner", "thumb", "thumb_half"} {
			f, closeFn, err := formFile(c, field)
			if err != nil {
				abortWithProblem(c, http.StatusBadRequest, err.Error())
				return
			}
			defer closeFn()
			files[field] = f
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		abortWithProblem(c, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	video, err := h.service.CreateVideo(c.Request.Context(), app.CreateVideoCommand{
		VideoFields:   req.fields(),
		CategoryIDs:   deref(req.CategoriesID),
		GenreIDs:      deref(req.GenresID),
		CastMemberIDs: deref(req.CastMembersID),
		Banner:        files["banner"],
		Thumb:         files["thumb"],
		ThumbHalf:     files["thumb_half"],
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/videos/"+video.ID.String())
	c.JSON(http.StatusCreated, newVideoResponse(video))
}

func (h *videoHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithProblem(c, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	video, err := h.service.UpdateVideo(c.Request.Context(), app.UpdateVideoCommand{
		ID:            id,
		VideoFields:   req.fields(),
		CategoryIDs:   req.CategoriesID,
		GenreIDs:      req.GenresID,
		CastMemberIDs: req.CastMembersID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newVideoResponse(video))
}

func (h *videoHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	video, err := h.service.GetVideo(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newVideoResponse(video))
}

func (h *videoHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVideo(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *videoHandler) uploadMedia(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	mediaType := c.Param("type")
	assign, known := mediaTypes[mediaType]
	if !known {
		abortWithProblem(c, http.StatusUnprocessableEntity, fmt.Sprintf("%s is not a valid media type", mediaType))
		return
	}

	file, closeFn, err := formFile(c, "file")
	if err != nil {
		abortWithProblem(c, http.StatusBadRequest, err.Error())
		return
	}
	defer closeFn()
	if file == nil {
		abortWithProblem(c, http.StatusUnprocessableEntity, "file is required",
			apperrors.FieldError{Field: "file", Message: "file is required"})
		return
	}

	cmd := app.UploadMediasCommand{VideoID: id}
	assign(&cmd, file)

	if err := h.service.UploadMedias(c.Request.Context(), cmd); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// formFile opens the multipart file in field. A missing field yields a nil
// input and a no-op close.
func formFile(c *gin.Context, field string) (*app.FileInput, func(), error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("invalid %s upload: %w", field, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("invalid %s upload: %w", field, err)
	}

	return &app.FileInput{
		Extension:   filepath.Ext(header.Filename),
		ContentType: contentType(header),
		Content:     f,
	}, func() { f.Close() }, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithProblem(c, http.StatusNotFound, fmt.Sprintf("%s is not a valid id", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}
