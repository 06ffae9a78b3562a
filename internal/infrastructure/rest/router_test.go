package rest

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) CreateVideo(ctx context.Context, cmd app.CreateVideoCommand) (*catalog.Video, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoService) UpdateVideo(ctx context.Context, cmd app.UpdateVideoCommand) (*catalog.Video, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoService) UploadMedias(ctx context.Context, cmd app.UploadMediasCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockVideoService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoService) GetVideo(ctx context.Context, id uuid.UUID) (*catalog.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRelationService struct {
	mock.Mock
}

func (m *MockRelationService) CreateCategory(ctx context.Context, cmd app.CreateCategoryCommand) (*catalog.Category, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelationService) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelationService) CreateGenre(ctx context.Context, cmd app.CreateGenreCommand) (*catalog.Genre, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelationService) GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelationService) CreateCastMember(ctx context.Context, cmd app.CreateCastMemberCommand) (*catalog.CastMember, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*catalog.CastMember), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRelationService) GetCastMember(ctx context.Context, id uuid.UUID) (*catalog.CastMember, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.CastMember), args.Error(1)
	}
	return nil, args.Error(1)
}

type RouterTestSuite struct {
	suite.Suite
	videos    *MockVideoService
	relations *MockRelationService
	router    *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.videos = new(MockVideoService)
	s.relations = new(MockRelationService)
	s.router = NewRouter(s.videos, s.relations, RouterOptions{
		MaxUploadBytes: 1 << 20,
		MetricsPath:    "/metrics",
		Gatherer:       prometheus.NewRegistry(),
	}, zaptest.NewLogger(s.T()))
}

func (s *RouterTestSuite) TearDownTest() {
	s.videos.AssertExpectations(s.T())
	s.relations.AssertExpectations(s.T())
}

func (s *RouterTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) decodeProblem(rec *httptest.ResponseRecorder) problem {
	var p problem
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func newTestVideo() *catalog.Video {
	return catalog.NewVideo("Title", "Description", 2020, 90, false, true, catalog.RatingL)
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (s *RouterTestSuite) TestCreateVideo_Multipart() {
	video := newTestVideo()
	categoryID := uuid.New()

	s.videos.On("CreateVideo", mock.Anything, mock.MatchedBy(func(cmd app.CreateVideoCommand) bool {
		if cmd.Banner == nil || cmd.Thumb != nil {
			return false
		}
		return cmd.Title == "Title" &&
			cmd.Rating == catalog.RatingL &&
			len(cmd.CategoryIDs) == 1 && cmd.CategoryIDs[0] == categoryID &&
			cmd.GenreIDs == nil &&
			cmd.Banner.Extension == ".png"
	})).Return(video, nil)

	metadata := `{"title":"Title","description":"d","year_launched":2020,"rating":"L","categories_id":["` + categoryID.String() + `"]}`
	body, contentType := multipartBody(s.T(), map[string]string{"metadata": metadata}, map[string]string{"banner": "b.png"})
	req := httptest.NewRequest(http.MethodPost, "/videos", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.serve(req)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("/videos/"+video.ID.String(), rec.Header().Get("Location"))
	s.NotEmpty(rec.Header().Get(requestIDHeader))

	var resp videoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(video.ID, resp.ID)
	s.Equal([]uuid.UUID{}, resp.GenresID)
}

func (s *RouterTestSuite) TestCreateVideo_MultipartWithoutFiles() {
	video := newTestVideo()
	s.videos.On("CreateVideo", mock.Anything, mock.MatchedBy(func(cmd app.CreateVideoCommand) bool {
		return cmd.Title == "Title" &&
			cmd.Banner == nil && cmd.Thumb == nil && cmd.ThumbHalf == nil &&
			len(cmd.CastMemberIDs) == 0
	})).Return(video, nil)

	metadata := `{"title":"Title","rating":"L","cast_members_id":[]}`
	body, contentType := multipartBody(s.T(), map[string]string{"metadata": metadata}, nil)
	req := httptest.NewRequest(http.MethodPost, "/videos", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.serve(req)

	s.Equal(http.StatusCreated, rec.Code)
	s.videos.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestCreateVideo_ValidationIs422WithFirstMessage() {
	s.videos.On("CreateVideo", mock.Anything, mock.Anything).Return(nil, apperrors.NewValidationError(
		apperrors.FieldError{Field: "title", Message: "title is required"},
		apperrors.FieldError{Field: "rating", Message: "rating is invalid"},
	))

	req := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")

	rec := s.serve(req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	p := s.decodeProblem(rec)
	s.Equal("title is required", p.Detail)
	s.Equal(http.StatusUnprocessableEntity, p.Status)
	s.Len(p.Errors, 2)
}

func (s *RouterTestSuite) TestCreateVideo_MissingRelatedIs422() {
	missing := uuid.New()
	s.videos.On("CreateVideo", mock.Anything, mock.Anything).Return(nil,
		&apperrors.RelatedAggregateError{Kind: "categories", MissingIDs: []uuid.UUID{missing}})

	req := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := s.serve(req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(s.decodeProblem(rec).Detail, missing.String())
}

func (s *RouterTestSuite) TestCreateVideo_BadMetadata() {
	body, contentType := multipartBody(s.T(), map[string]string{"metadata": "{"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/videos", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.serve(req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestUpdateVideo_DistinguishesAbsentAndEmptyLists() {
	video := newTestVideo()
	s.videos.On("UpdateVideo", mock.Anything, mock.MatchedBy(func(cmd app.UpdateVideoCommand) bool {
		return cmd.ID == video.ID &&
			cmd.CategoryIDs == nil &&
			cmd.GenreIDs != nil && len(*cmd.GenreIDs) == 0
	})).Return(video, nil)

	req := httptest.NewRequest(http.MethodPut, "/videos/"+video.ID.String(),
		strings.NewReader(`{"title":"Title","genres_id":[]}`))
	req.Header.Set("Content-Type", "application/json")

	rec := s.serve(req)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestUpdateVideo_ErrorStatuses() {
	tests := []struct {
		err  error
		want int
	}{
		{catalog.VideoNotFound(uuid.New()), http.StatusNotFound},
		{catalog.VersionConflict(uuid.New(), 2), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.SetupTest()
		id := uuid.New()
		s.videos.On("UpdateVideo", mock.Anything, mock.Anything).Return(nil, tt.err)

		req := httptest.NewRequest(http.MethodPut, "/videos/"+id.String(), strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := s.serve(req)

		s.Equal(tt.want, rec.Code, tt.err.Error())
		if tt.want == http.StatusInternalServerError {
			s.Equal("internal server error", s.decodeProblem(rec).Detail)
		}
	}
}

func (s *RouterTestSuite) TestGetVideo() {
	video := newTestVideo()
	video.UpdateMedia("m.mp4")
	s.videos.On("GetVideo", mock.Anything, video.ID).Return(video, nil)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/videos/"+video.ID.String(), nil))

	s.Equal(http.StatusOK, rec.Code)
	var resp videoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().NotNil(resp.Media)
	s.Equal("PENDING", resp.Media.Status)
}

func (s *RouterTestSuite) TestGetVideo_InvalidID() {
	rec := s.serve(httptest.NewRequest(http.MethodGet, "/videos/not-a-uuid", nil))

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestDeleteVideo() {
	id := uuid.New()
	s.videos.On("DeleteVideo", mock.Anything, id).Return(nil)

	rec := s.serve(httptest.NewRequest(http.MethodDelete, "/videos/"+id.String(), nil))

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *RouterTestSuite) TestUploadMedia_MapsTypeToSlot() {
	id := uuid.New()
	s.videos.On("UploadMedias", mock.Anything, mock.MatchedBy(func(cmd app.UploadMediasCommand) bool {
		return cmd.VideoID == id && cmd.Media != nil && cmd.Media.Extension == ".mp4" &&
			cmd.Banner == nil && cmd.Trailer == nil
	})).Return(nil)

	body, contentType := multipartBody(s.T(), nil, map[string]string{"file": "movie.mp4"})
	req := httptest.NewRequest(http.MethodPost, "/videos/"+id.String()+"/medias/video", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.serve(req)

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *RouterTestSuite) TestUploadMedia_UnknownType() {
	body, contentType := multipartBody(s.T(), nil, map[string]string{"file": "x.bin"})
	req := httptest.NewRequest(http.MethodPost, "/videos/"+uuid.NewString()+"/medias/poster", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.serve(req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("poster is not a valid media type", s.decodeProblem(rec).Detail)
}

func (s *RouterTestSuite) TestUploadMedia_MissingFile() {
	body, contentType := multipartBody(s.T(), map[string]string{"other": "x"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/videos/"+uuid.NewString()+"/medias/banner", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.serve(req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *RouterTestSuite) TestCreateCategory_DefaultsToActive() {
	category, err := catalog.NewCategory("Drama", "", true)
	s.Require().NoError(err)
	s.relations.On("CreateCategory", mock.Anything, app.CreateCategoryCommand{Name: "Drama", IsActive: true}).
		Return(category, nil)

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Drama"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := s.serve(req)

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *RouterTestSuite) TestCreateCastMember_Invalid() {
	s.relations.On("CreateCastMember", mock.Anything, app.CreateCastMemberCommand{Name: "", Type: 1}).
		Return(nil, apperrors.NewValidationError(apperrors.FieldError{Field: "name", Message: "name is required"}))

	req := httptest.NewRequest(http.MethodPost, "/cast_members", strings.NewReader(`{"name":"","type":1}`))
	req.Header.Set("Content-Type", "application/json")

	rec := s.serve(req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("name is required", s.decodeProblem(rec).Detail)
}

func (s *RouterTestSuite) TestHealthAndMetrics() {
	s.Equal(http.StatusOK, s.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	s.Equal(http.StatusOK, s.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil)).Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
