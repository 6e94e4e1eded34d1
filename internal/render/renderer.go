package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"regexp"

	"github.com/Rrens/birthday-builder/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	fallbackPrimary   = "#ff6b9d"
	fallbackSecondary = "#ffc8dd"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Renderer turns render contexts into HTML documents
type Renderer struct {
	page     *template.Template
	notFound *template.Template
}

type slideView struct {
	Index    int
	Title    string
	Body     string
	PhotoURL string
}

type pageView struct {
	Name            string
	DOBText         string
	IntroHeader     string
	IntroText       string
	Primary         template.CSS
	Secondary       template.CSS
	Slides          []slideView
	AudioURL        string
	FinalSlideTitle string
}

// New parses the embedded templates
func New() (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/birthday.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	notFound, err := template.ParseFS(templateFS, "templates/not_found.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse not found template: %w", err)
	}
	return &Renderer{page: page, notFound: notFound}, nil
}

// Page writes the birthday page for rc.
// The document is rendered into memory first so a template failure never leaves a half-written response.
func (r *Renderer) Page(w io.Writer, rc *domain.RenderContext) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, newPageView(rc)); err != nil {
		return fmt.Errorf("failed to render page %s: %w", rc.Slug, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// NotFound writes the page shown for unknown slugs
func (r *Renderer) NotFound(w io.Writer) error {
	return r.notFound.Execute(w, nil)
}

// MediaURL is the proxy path for an opaque media reference
func MediaURL(ref string) string {
	return "/media/" + url.PathEscape(ref)
}

func newPageView(rc *domain.RenderContext) pageView {
	slides := make([]slideView, 0, len(rc.Slides))
	for i, s := range rc.Slides {
		view := slideView{Index: i + 1, Title: s.Title, Body: s.Body}
		if i < len(rc.PhotoIDs) {
			view.PhotoURL = MediaURL(rc.PhotoIDs[i])
		}
		slides = append(slides, view)
	}

	view := pageView{
		Name:            rc.Name,
		DOBText:         rc.DOBText,
		IntroHeader:     rc.IntroHeader,
		IntroText:       rc.IntroText,
		Primary:         safeColor(rc.Colors.Primary, fallbackPrimary),
		Secondary:       safeColor(rc.Colors.Secondary, fallbackSecondary),
		Slides:          slides,
		FinalSlideTitle: rc.FinalSlideTitle,
	}
	if rc.AudioID != "" {
		view.AudioURL = MediaURL(rc.AudioID)
	}
	return view
}

func safeColor(c, fallback string) template.CSS {
	if hexColor.MatchString(c) {
		return template.CSS(c)
	}
	return template.CSS(fallback)
}
