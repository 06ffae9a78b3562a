package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// RelationService manages the aggregates a video refers to
type RelationService interface {
	CreateCategory(ctx context.Context, cmd app.CreateCategoryCommand) (*catalog.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
	CreateGenre(ctx context.Context, cmd app.CreateGenreCommand) (*catalog.Genre, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error)
	CreateCastMember(ctx context.Context, cmd app.CreateCastMemberCommand) (*catalog.CastMember, error)
	GetCastMember(ctx context.Context, id uuid.UUID) (*catalog.CastMember, error)
}

type relationHandler struct {
	service RelationService
}

func (h *relationHandler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithProblem(c, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), app.CreateCategoryCommand{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    activeOrDefault(req.IsActive),
	})
	respond(c, http.StatusCreated, category, err)
}

func (h *relationHandler) getCategory(c *gin.Context) {
	if id, ok := pathID(c); ok {
		category, err := h.service.GetCategory(c.Request.Context(), id)
		respond(c, http.StatusOK, category, err)
	}
}

func (h *relationHandler) createGenre(c *gin.Context) {
	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithProblem(c, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	genre, err := h.service.CreateGenre(c.Request.Context(), app.CreateGenreCommand{
		Name:     req.Name,
		IsActive: activeOrDefault(req.IsActive),
	})
	respond(c, http.StatusCreated, genre, err)
}

func (h *relationHandler) getGenre(c *gin.Context) {
	if id, ok := pathID(c); ok {
		genre, err := h.service.GetGenre(c.Request.Context(), id)
		respond(c, http.StatusOK, genre, err)
	}
}

func (h *relationHandler) createCastMember(c *gin.Context) {
	var req castMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithProblem(c, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	member, err := h.service.CreateCastMember(c.Request.Context(), app.CreateCastMemberCommand{
		Name: req.Name,
		Type: catalog.CastMemberType(req.Type),
	})
	respond(c, http.StatusCreated, member, err)
}

func (h *relationHandler) getCastMember(c *gin.Context) {
	if id, ok := pathID(c); ok {
		member, err := h.service.GetCastMember(c.Request.Context(), id)
		respond(c, http.StatusOK, member, err)
	}
}

func respond(c *gin.Context, status int, body interface{}, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, body)
}
