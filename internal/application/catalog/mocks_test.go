package catalog_test

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	domain "github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// MockVideoRepository is a mock for the video repository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Insert(ctx context.Context, video domain.ValidVideo) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

// MockRelationRepository serves as category, genre and cast member repository
type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) ListExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRelationRepository) Insert(ctx context.Context, entity any) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

type mockCategories struct{ *MockRelationRepository }

func (m mockCategories) Insert(ctx context.Context, c *domain.Category) error {
	return m.MockRelationRepository.Insert(ctx, c)
}

func (m mockCategories) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Category), args.Error(1)
}

type mockGenres struct{ *MockRelationRepository }

func (m mockGenres) Insert(ctx context.Context, g *domain.Genre) error {
	return m.MockRelationRepository.Insert(ctx, g)
}

func (m mockGenres) Get(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Genre), args.Error(1)
}

type mockCastMembers struct{ *MockRelationRepository }

func (m mockCastMembers) Insert(ctx context.Context, c *domain.CastMember) error {
	return m.MockRelationRepository.Insert(ctx, c)
}

func (m mockCastMembers) Get(ctx context.Context, id uuid.UUID) (*domain.CastMember, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.CastMember), args.Error(1)
}

// MockAssetStore is a mock for the asset store
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Upload(ctx context.Context, name string, content io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, name, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MockEventPublisher is a mock for the integration publisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishVideoUploaded(ctx context.Context, event *domain.VideoUploaded) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockRecorder is a mock for the metrics recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) PublishFailed(kind string) {
	m.Called(kind)
}

func (m *MockRecorder) Compensated(operation string, cleanupFailed bool) {
	m.Called(operation, cleanupFailed)
}

// fakeUnitOfWork counts transaction outcomes
type fakeUnitOfWork struct {
	begun      int
	committed  int
	rolledBack int
	commitErr  error
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) (app.Transaction, error) {
	u.begun++
	return &fakeTransaction{uow: u, ctx: ctx}, nil
}

type fakeTransaction struct {
	uow  *fakeUnitOfWork
	ctx  context.Context
	done bool
}

func (t *fakeTransaction) Commit() error {
	if t.uow.commitErr != nil {
		return t.uow.commitErr
	}
	t.done = true
	t.uow.committed++
	return nil
}

func (t *fakeTransaction) Rollback() error {
	if !t.done {
		t.done = true
		t.uow.rolledBack++
	}
	return nil
}

func (t *fakeTransaction) Context() context.Context {
	return t.ctx
}
