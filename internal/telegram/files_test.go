package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileAPI struct {
	file tgbotapi.File
	err  error
}

func (f fakeFileAPI) GetFile(tgbotapi.FileConfig) (tgbotapi.File, error) {
	return f.file, f.err
}

func TestFileResolver_Resolve(t *testing.T) {
	r := NewFileResolver(fakeFileAPI{file: tgbotapi.File{FileID: "abc", FilePath: "photos/file_1.jpg"}}, "TOKEN", "")

	url, err := r.Resolve(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/file/botTOKEN/photos/file_1.jpg", url)
}

func TestFileResolver_CustomEndpoint(t *testing.T) {
	r := NewFileResolver(fakeFileAPI{file: tgbotapi.File{FilePath: "music/file_2.mp3"}}, "T", "http://localhost:8081/file/bot%s/%s")

	url, err := r.Resolve(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081/file/botT/music/file_2.mp3", url)
}

func TestFileResolver_UnknownFile(t *testing.T) {
	apiErr := &tgbotapi.Error{Code: 400, Message: "Bad Request: invalid file_id"}
	r := NewFileResolver(fakeFileAPI{err: apiErr}, "T", "")

	_, err := r.Resolve(context.Background(), "bogus")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestFileResolver_NetworkFailure(t *testing.T) {
	r := NewFileResolver(fakeFileAPI{err: errors.New("connection refused")}, "T", "")

	_, err := r.Resolve(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPageNotFound)
}

type blockingFileAPI struct {
	release chan struct{}
}

func (b blockingFileAPI) GetFile(tgbotapi.FileConfig) (tgbotapi.File, error) {
	<-b.release
	return tgbotapi.File{FilePath: "late.jpg"}, nil
}

func TestFileResolver_AbandonsOnContextEnd(t *testing.T) {
	api := blockingFileAPI{release: make(chan struct{})}
	defer close(api.release)
	r := NewFileResolver(api, "T", "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domain.ErrPageNotFound)
}
