package handler_test

import (
	"context"
	"io"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) Render(ctx context.Context, slug string) (*domain.RenderContext, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderContext), args.Error(1)
}

type MockMediaOpener struct {
	mock.Mock
}

func (m *MockMediaOpener) Open(ctx context.Context, ref string) (*domain.MediaStream, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaStream), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type stubRenderer struct {
	err error
}

func (s stubRenderer) Page(w io.Writer, rc *domain.RenderContext) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, "<h1>"+rc.IntroHeader+"</h1><h2>"+rc.FinalSlideTitle+"</h2>")
	return err
}

func (s stubRenderer) NotFound(w io.Writer) error {
	_, err := io.WriteString(w, "<h1>Page not found</h1>")
	return err
}
