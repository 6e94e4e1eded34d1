package service

import (
	"context"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockPageRepository mocks the PageRepository interface
type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) Put(ctx context.Context, page *domain.PageRecord) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockPageRepository) Get(ctx context.Context, slug string) (*domain.PageRecord, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageRecord), args.Error(1)
}

func (m *MockPageRepository) Exists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockPageRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMediaResolver mocks the MediaResolver interface
type MockMediaResolver struct {
	mock.Mock
}

func (m *MockMediaResolver) Resolve(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
