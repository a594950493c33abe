// Package views holds the parts of the page: the recipe, the search results,
// the pagination, the bookmarks, the search form and the upload form.
package views

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/exp/maps"
	"golang.org/x/net/html"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

const SKELETON = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>forkify // Search over 1,000,000 recipes</title>
</head>
<body>
<div class="container">
  <header class="header">
    <img src="img/logo.png" alt="Logo" class="header__logo" />
    <form class="search">
      <input type="text" name="query" value="" class="search__field" placeholder="Search over 1,000,000 recipes..." />
      <button class="btn search__btn"><span>Search</span></button>
    </form>
    <nav class="nav">
      <ul class="nav__list">
        <li class="nav__item">
          <button class="nav__btn nav__btn--add-recipe"><span>Add recipe</span></button>
        </li>
        <li class="nav__item">
          <button class="nav__btn nav__btn--bookmarks"><span>Bookmarks</span></button>
          <div class="bookmarks">
            <ul class="bookmarks__list">
              <div class="message"><p>No bookmarks yet. Find a nice recipe and bookmark it ;)</p></div>
            </ul>
          </div>
        </li>
      </ul>
    </nav>
  </header>
  <div class="search-results">
    <ul class="results"></ul>
    <div class="pagination"></div>
  </div>
  <div class="recipe">
    <div class="message"><p>Start by searching for a recipe or an ingredient. Have fun!</p></div>
  </div>
</div>
<div class="overlay hidden"></div>
<div class="add-recipe-window hidden">
  <button class="btn--close-modal">&times;</button>
  <form class="upload"></form>
</div>
</body>
</html>`

const (
	ANCHOR_RECIPE     = "recipe"
	ANCHOR_RESULTS    = "results"
	ANCHOR_PAGINATION = "pagination"
	ANCHOR_BOOKMARKS  = "bookmarks__list"
	ANCHOR_UPLOAD     = "upload"
	ANCHOR_SEARCH     = "search"
)

// Clicker turns a click somewhere below a region into a message.
type Clicker interface {
	Click(target *goquery.Selection) (messages.Message, bool)
}

// Submitter turns a submitted form into a message.
type Submitter interface {
	Submit(fields map[string]string) (messages.Message, bool)
}

type Page struct {
	Document *html.Node
	Location string

	Recipe     *RecipeView
	Results    *ResultsView
	Pagination *PaginationView
	Bookmarks  *BookmarksView
	Search     *SearchView
	Upload     *UploadView

	regions map[string]*view.Region
	views   map[string]any
}

func NewPage(icons string, log *logger.Logger) (*Page, error) {
	doc, err := html.Parse(strings.NewReader(SKELETON))
	if err != nil {
		return nil, err
	}
	p := &Page{
		Document: doc,
		regions:  make(map[string]*view.Region),
		views:    make(map[string]any),
	}
	root := goquery.NewDocumentFromNode(doc)
	for _, anchor := range []string{ANCHOR_RECIPE, ANCHOR_RESULTS, ANCHOR_PAGINATION, ANCHOR_BOOKMARKS, ANCHOR_UPLOAD, ANCHOR_SEARCH} {
		node := root.Find("." + anchor).Get(0)
		if node == nil {
			return nil, exceptions.InternalServer("page is missing ." + anchor)
		}
		p.regions[anchor] = view.NewRegion(node, icons, log)
	}
	preview := &PreviewView{
		Icons:    icons,
		Location: func() string { return p.Location },
	}
	p.Recipe = &RecipeView{region: p.regions[ANCHOR_RECIPE]}
	p.Results = &ResultsView{region: p.regions[ANCHOR_RESULTS], preview: preview}
	p.Pagination = &PaginationView{region: p.regions[ANCHOR_PAGINATION]}
	p.Bookmarks = &BookmarksView{region: p.regions[ANCHOR_BOOKMARKS], preview: preview}
	p.Search = &SearchView{region: p.regions[ANCHOR_SEARCH]}
	p.Upload = &UploadView{region: p.regions[ANCHOR_UPLOAD], document: doc}
	p.views[ANCHOR_RECIPE] = p.Recipe
	p.views[ANCHOR_RESULTS] = p.Results
	p.views[ANCHOR_PAGINATION] = p.Pagination
	p.views[ANCHOR_BOOKMARKS] = p.Bookmarks
	p.views[ANCHOR_SEARCH] = p.Search
	p.views[ANCHOR_UPLOAD] = p.Upload
	if err := view.Render(p.Upload, data.RecipeDraft{}); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLocation records the fragment and returns the recipe id it names.
func (p *Page) SetLocation(hash string) string {
	p.Location = strings.TrimPrefix(hash, "#")
	return p.Location
}

func (p *Page) Anchors() []string {
	anchors := maps.Keys(p.regions)
	slices.Sort(anchors)
	return anchors
}

func (p *Page) Region(anchor string) (*view.Region, error) {
	region, ok := p.regions[anchor]
	if !ok {
		return nil, exceptions.NotFound("region", anchor)
	}
	return region, nil
}

func (p *Page) HTML() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, p.Document); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Regions returns the inner HTML of every region keyed by anchor.
func (p *Page) Regions() (map[string]string, error) {
	snapshot := make(map[string]string, len(p.regions))
	for _, anchor := range p.Anchors() {
		out, err := p.regions[anchor].HTML()
		if err != nil {
			return nil, err
		}
		snapshot[anchor] = out
	}
	return snapshot, nil
}

// Click resolves the element-th element below the region and asks the
// region's view what the click means. A nil message means nothing happens.
func (p *Page) Click(anchor string, element int) (messages.Message, error) {
	region, err := p.Region(anchor)
	if err != nil {
		return nil, err
	}
	elements := region.Selection().Find("*")
	if element < 0 || element >= elements.Length() {
		return nil, exceptions.Validation("Region %s has no element %d", anchor, element)
	}
	clicker, ok := p.views[anchor].(Clicker)
	if !ok {
		return nil, nil
	}
	msg, ok := clicker.Click(elements.Eq(element))
	if !ok {
		return nil, nil
	}
	return msg, nil
}

func (p *Page) Submit(anchor string, fields map[string]string) (messages.Message, error) {
	if _, err := p.Region(anchor); err != nil {
		return nil, err
	}
	submitter, ok := p.views[anchor].(Submitter)
	if !ok {
		return nil, exceptions.Validation("Region %s has no form", anchor)
	}
	msg, ok := submitter.Submit(fields)
	if !ok {
		return nil, nil
	}
	return msg, nil
}
