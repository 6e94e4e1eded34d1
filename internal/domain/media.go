package domain

import (
	"context"
	"io"
)

// MediaResolver turns an opaque media reference into a download location
type MediaResolver interface {
	// Resolve returns ErrPageNotFound when the reference is unknown or expired
	Resolve(ctx context.Context, ref string) (string, error)
}

// MediaStream is an open upstream body
type MediaStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}
