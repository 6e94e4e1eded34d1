package domain

// Slide is one titled panel of a page
type Slide struct {
	Title string `json:"title"`
	Body  string `json:"text"`
}

// Colors is the palette of a theme
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// RenderContext is everything the page template needs for one view
type RenderContext struct {
	Slug            string
	Name            string
	DOBText         string
	IntroText       string
	Colors          Colors
	Slides          []Slide
	PhotoIDs        []string
	AudioID         string
	IntroHeader     string
	FinalSlideTitle string
}
