package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
)

// MediaService opens upstream media for an opaque reference
type MediaService struct {
	resolver       domain.MediaResolver
	client         *http.Client
	resolveTimeout time.Duration
}

// NewMediaService creates a new media service.
// The client should carry no overall timeout, since bodies are streamed for as long as the visitor reads.
func NewMediaService(resolver domain.MediaResolver, client *http.Client) *MediaService {
	if client == nil {
		client = http.DefaultClient
	}
	return &MediaService{resolver: resolver, client: client}
}

// WithResolveTimeout bounds the location lookup; the download itself is bounded only by ctx
func (s *MediaService) WithResolveTimeout(d time.Duration) *MediaService {
	s.resolveTimeout = d
	return s
}

func (s *MediaService) resolve(ctx context.Context, ref string) (string, error) {
	if s.resolveTimeout <= 0 {
		return s.resolver.Resolve(ctx, ref)
	}
	ctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()
	return s.resolver.Resolve(ctx, ref)
}

// Open resolves the reference and starts the upstream download.
// The caller must close the returned body; cancelling ctx abandons the download.
func (s *MediaService) Open(ctx context.Context, ref string) (*domain.MediaStream, error) {
	location, err := s.resolve(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: resolve: %w", domain.ErrUpstreamFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrUpstreamFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download: %w", domain.ErrUpstreamFetch, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: media %s gone upstream", domain.ErrPageNotFound, ref)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: upstream status %d", domain.ErrUpstreamFetch, resp.StatusCode)
	}

	return &domain.MediaStream{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}
