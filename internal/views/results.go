package views

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

type ResultsView struct {
	region  *view.Region
	preview *PreviewView
}

func (r *ResultsView) Anchor() *view.Region {
	return r.region
}

func (r *ResultsView) Markup(d any) (string, error) {
	items, ok := d.([]data.SearchResultItem)
	if !ok {
		return "", fmt.Errorf("results cannot render %T", d)
	}
	return r.preview.list(items)
}

func (r *ResultsView) ErrorMessage() string {
	return "No recipes found for your query! Please try again ;)"
}

func (r *ResultsView) SuccessMessage() string {
	return ""
}

func (r *ResultsView) Click(target *goquery.Selection) (messages.Message, bool) {
	return clickPreview(target)
}

type BookmarksView struct {
	region  *view.Region
	preview *PreviewView
}

func (b *BookmarksView) Anchor() *view.Region {
	return b.region
}

func (b *BookmarksView) Markup(d any) (string, error) {
	bookmarks, ok := d.([]data.Recipe)
	if !ok {
		return "", fmt.Errorf("bookmarks cannot render %T", d)
	}
	items := make([]data.SearchResultItem, len(bookmarks))
	for i, bookmark := range bookmarks {
		items[i] = bookmark.Summary()
	}
	return b.preview.list(items)
}

func (b *BookmarksView) ErrorMessage() string {
	return "No bookmarks yet. Find a nice recipe and bookmark it ;)"
}

func (b *BookmarksView) SuccessMessage() string {
	return ""
}

func (b *BookmarksView) Click(target *goquery.Selection) (messages.Message, bool) {
	return clickPreview(target)
}

func clickPreview(target *goquery.Selection) (messages.Message, bool) {
	link := target.Closest("a.preview__link")
	if link.Length() == 0 {
		return nil, false
	}
	href, ok := link.Attr("href")
	if !ok {
		return nil, false
	}
	return messages.LocationChanged{Hash: href}, true
}
