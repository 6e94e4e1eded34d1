package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// PhotoQuota is the number of photos every page shows
const PhotoQuota = 10

// SlugLength is the length of a generated page slug
const SlugLength = 10

// PageRecord is a persisted birthday page
type PageRecord struct {
	Slug       string    `json:"slug" validate:"required,len=10,alphanum,lowercase"`
	Name       string    `json:"name" validate:"required"`
	DOBText    string    `json:"dob_text" validate:"required"`
	AgeText    string    `json:"age_text"`
	ThemeKey   string    `json:"theme_key" validate:"required"`
	PhotoIDs   []string  `json:"photo_ids" validate:"max=10,dive,required"`
	AudioID    string    `json:"audio_id" validate:"required"`
	CustomText *string   `json:"custom_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

var validate = validator.New()

// Validate checks the record before it is written
func (p *PageRecord) Validate() error {
	return validate.Struct(p)
}

// EncodePhotoIDs serializes photo references for column storage
func EncodePhotoIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodePhotoIDs parses stored photo references.
// Malformed data yields an empty list so a page still renders.
func DecodePhotoIDs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Warn().Err(err).Msg("Malformed stored photo ids, rendering without photos")
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// PageRepository defines the interface for page storage
type PageRepository interface {
	// Put inserts the record or replaces the one with the same slug
	Put(ctx context.Context, page *PageRecord) error
	// Get returns ErrPageNotFound when the slug is unknown
	Get(ctx context.Context, slug string) (*PageRecord, error)
	Exists(ctx context.Context, slug string) (bool, error)
	Ping(ctx context.Context) error
}
