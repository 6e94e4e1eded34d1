package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/birthday-builder/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fileAPI is the subset of the Telegram client used by FileResolver
type fileAPI interface {
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// FileResolver resolves Telegram file ids to short-lived download URLs
type FileResolver struct {
	api          fileAPI
	token        string
	fileEndpoint string
}

// NewFileResolver creates a resolver; fileEndpoint is a format taking the token and the file path
func NewFileResolver(api fileAPI, token, fileEndpoint string) *FileResolver {
	if fileEndpoint == "" {
		fileEndpoint = tgbotapi.FileEndpoint
	}
	return &FileResolver{api: api, token: token, fileEndpoint: fileEndpoint}
}

type getFileResult struct {
	file tgbotapi.File
	err  error
}

// Resolve implements domain.MediaResolver.
// The Bot API client takes no context, so the lookup is abandoned rather than aborted when ctx ends.
func (r *FileResolver) Resolve(ctx context.Context, fileID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan getFileResult, 1)
	go func() {
		file, err := r.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
		done <- getFileResult{file: file, err: err}
	}()

	var res getFileResult
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("failed to get telegram file: %w", ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(res.err, &apiErr) {
			return "", fmt.Errorf("%w: telegram file %s: %s", domain.ErrPageNotFound, fileID, apiErr.Message)
		}
		return "", fmt.Errorf("failed to get telegram file: %w", res.err)
	}
	if res.file.FilePath == "" {
		return "", fmt.Errorf("%w: telegram file %s has no path", domain.ErrPageNotFound, fileID)
	}

	return fmt.Sprintf(r.fileEndpoint, r.token, res.file.FilePath), nil
}
