// Package messages defines what the page sends to the controller.
package messages

import "philcali.me/forkify/internal/data"

type Message interface {
	Name() string
}

// PageLoaded is the first message of a page. A non-empty Hash replaces the
// current location before the recipe is shown.
type PageLoaded struct {
	Hash string
}

// LocationChanged carries the new fragment, with or without the leading '#'.
type LocationChanged struct {
	Hash string
}

type SearchSubmitted struct {
	Query string
}

type PageRequested struct {
	Page int
}

type ServingsChanged struct {
	Servings int
}

type BookmarkToggled struct{}

type RecipeUploaded struct {
	Draft data.RecipeDraft
}

type DialogueToggled struct{}

// Clicked is a raw click on the element at Element, counted in document
// order below the region named Anchor.
type Clicked struct {
	Anchor  string
	Element int
}

// Submitted is a raw form submission inside the region named Anchor.
type Submitted struct {
	Anchor string
	Fields map[string]string
}

func (PageLoaded) Name() string      { return "PageLoaded" }
func (LocationChanged) Name() string { return "LocationChanged" }
func (SearchSubmitted) Name() string { return "SearchSubmitted" }
func (PageRequested) Name() string   { return "PageRequested" }
func (ServingsChanged) Name() string { return "ServingsChanged" }
func (BookmarkToggled) Name() string { return "BookmarkToggled" }
func (RecipeUploaded) Name() string  { return "RecipeUploaded" }
func (DialogueToggled) Name() string { return "DialogueToggled" }
func (Clicked) Name() string         { return "Clicked" }
func (Submitted) Name() string       { return "Submitted" }
