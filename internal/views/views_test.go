package views

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

func newPage(t *testing.T) *Page {
	page, err := NewPage("img/icons.svg", logger.Discard())
	if err != nil {
		t.Fatalf("Failed to create page: %s", err)
	}
	return page
}

func pizza() data.Recipe {
	return data.Recipe{
		ID:          "pizza-01",
		Title:       "Pizza",
		Publisher:   "Closet Cooking",
		SourceURL:   "http://closetcooking.example/pizza",
		Image:       "http://images.example/pizza.jpg",
		Servings:    4,
		CookingTime: 45,
		Ingredients: []data.Ingredient{
			{Quantity: aws.Float64(1.5), Unit: "cups", Description: "flour"},
			{Description: "salt"},
		},
	}
}

// elementIndex finds the position Click expects for the first element
// matching selector.
func elementIndex(t *testing.T, region *view.Region, selector string) int {
	index := -1
	region.Selection().Find("*").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Is(selector) {
			index = i
			return false
		}
		return true
	})
	if index < 0 {
		t.Fatalf("No element matches %s", selector)
	}
	return index
}

func TestFormatQuantity(t *testing.T) {
	cases := map[float64]string{
		0:     "",
		0.5:   "1/2",
		1.5:   "1 1/2",
		3:     "3",
		0.333: "1/3",
		2.25:  "2 1/4",
		0.75:  "3/4",
		0.1:   "1/10",
	}
	for quantity, expected := range cases {
		q := quantity
		if got := formatQuantity(&q); got != expected {
			t.Fatalf("formatQuantity(%v) = %q, expected %q", quantity, got, expected)
		}
	}
	if got := formatQuantity(nil); got != "" {
		t.Fatalf("Expected nothing for a missing quantity, got %q", got)
	}
}

func TestPage(t *testing.T) {
	page := newPage(t)
	expected := []string{"bookmarks__list", "pagination", "recipe", "results", "search", "upload"}
	if diff := cmp.Diff(expected, page.Anchors()); diff != "" {
		t.Fatalf("Anchors mismatch (-want +got):\n%s", diff)
	}
	if _, err := page.Region("nope"); err == nil {
		t.Fatal("Expected an unknown anchor to fail")
	}
	regions, err := page.Regions()
	if err != nil {
		t.Fatalf("Failed to snapshot regions: %s", err)
	}
	if !strings.Contains(regions[ANCHOR_UPLOAD], `name="ingredient-6"`) {
		t.Fatalf("Expected the upload form to be rendered, got %s", regions[ANCHOR_UPLOAD])
	}
	if !strings.Contains(regions[ANCHOR_RECIPE], "Start by searching") {
		t.Fatalf("Expected the skeleton message, got %s", regions[ANCHOR_RECIPE])
	}
}

func TestRecipeView(t *testing.T) {
	page := newPage(t)
	recipe := pizza()
	if err := view.Render(page.Recipe, &recipe); err != nil {
		t.Fatalf("Failed to render recipe: %s", err)
	}
	out, _ := page.Recipe.Anchor().HTML()
	for _, fragment := range []string{
		`<div class="recipe__quantity">1 1/2</div>`,
		`<div class="recipe__quantity"></div>`,
		`data-update-to="3"`,
		`data-update-to="5"`,
		`href="img/icons.svg#icon-bookmark"`,
		`class="recipe__user-generated hidden"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("Expected %s in %s", fragment, out)
		}
	}

	t.Run("servings click", func(t *testing.T) {
		index := elementIndex(t, page.Recipe.Anchor(), `[data-update-to="5"] use`)
		msg, err := page.Click(ANCHOR_RECIPE, index)
		if err != nil {
			t.Fatalf("Failed to click: %s", err)
		}
		if diff := cmp.Diff(messages.Message(messages.ServingsChanged{Servings: 5}), msg); diff != "" {
			t.Fatalf("Unexpected message (-want +got):\n%s", diff)
		}
	})

	t.Run("bookmark click", func(t *testing.T) {
		msg, err := page.Click(ANCHOR_RECIPE, elementIndex(t, page.Recipe.Anchor(), ".btn--bookmark"))
		if err != nil || msg != (messages.BookmarkToggled{}) {
			t.Fatalf("Expected BookmarkToggled, got %v %v", msg, err)
		}
	})

	t.Run("elsewhere", func(t *testing.T) {
		msg, err := page.Click(ANCHOR_RECIPE, 0)
		if err != nil || msg != nil {
			t.Fatalf("Expected no message, got %v %v", msg, err)
		}
		if _, err := page.Click(ANCHOR_RECIPE, 10000); err == nil {
			t.Fatal("Expected an out of range element to fail")
		}
	})

	t.Run("update", func(t *testing.T) {
		people := page.Recipe.Anchor().Selection().Find(".recipe__info-data--people").Get(0)
		recipe.Servings = 8
		recipe.Ingredients[0].Quantity = aws.Float64(3)
		recipe.Bookmarked = true
		if err := view.Update(page.Recipe, &recipe); err != nil {
			t.Fatalf("Failed to update: %s", err)
		}
		after := page.Recipe.Anchor().Selection().Find(".recipe__info-data--people")
		if after.Get(0) != people || after.Text() != "8" {
			t.Fatalf("Expected the servings to be patched in place, got %q", after.Text())
		}
		out, _ := page.Recipe.Anchor().HTML()
		if !strings.Contains(out, `<div class="recipe__quantity">3</div>`) || !strings.Contains(out, "#icon-bookmark-fill") {
			t.Fatalf("Update missed a change: %s", out)
		}
	})
}

func TestResultsView(t *testing.T) {
	page := newPage(t)
	page.SetLocation("#b")
	items := []data.SearchResultItem{
		{ID: "a", Title: "A", Publisher: "P", Image: "http://img/a.jpg"},
		{ID: "b", Title: "B", Publisher: "P", Image: "http://img/b.jpg", Key: "k"},
	}
	if err := view.Render(page.Results, items); err != nil {
		t.Fatalf("Failed to render results: %s", err)
	}
	links := page.Results.Anchor().Selection().Find("a.preview__link")
	if links.Length() != 2 {
		t.Fatalf("Expected two previews, got %d", links.Length())
	}
	if links.Eq(0).HasClass("preview__link--active") || !links.Eq(1).HasClass("preview__link--active") {
		t.Fatal("Expected only the current location to be active")
	}

	msg, err := page.Click(ANCHOR_RESULTS, elementIndex(t, page.Results.Anchor(), ".preview__title"))
	if err != nil {
		t.Fatalf("Failed to click: %s", err)
	}
	if msg != (messages.LocationChanged{Hash: "#a"}) {
		t.Fatalf("Expected a location change to #a, got %v", msg)
	}

	t.Run("empty=>Error", func(t *testing.T) {
		view.Render(page.Results, []data.SearchResultItem{})
		out, _ := page.Results.Anchor().HTML()
		if !strings.Contains(out, page.Results.ErrorMessage()) {
			t.Fatalf("Expected the results error message, got %s", out)
		}
	})
}

func TestBookmarksView(t *testing.T) {
	page := newPage(t)
	if err := view.Render(page.Bookmarks, []data.Recipe{pizza()}); err != nil {
		t.Fatalf("Failed to render bookmarks: %s", err)
	}
	out, _ := page.Bookmarks.Anchor().HTML()
	if !strings.Contains(out, `href="#pizza-01"`) {
		t.Fatalf("Expected a link to the bookmark, got %s", out)
	}
	view.Render(page.Bookmarks, []data.Recipe{})
	out, _ = page.Bookmarks.Anchor().HTML()
	if !strings.Contains(out, "No bookmarks yet") {
		t.Fatalf("Expected the bookmarks error message, got %s", out)
	}
}

func TestPaginationView(t *testing.T) {
	page := newPage(t)
	results := make([]data.SearchResultItem, 25)
	cases := []struct {
		name     string
		page     int
		results  int
		prev     bool
		next     bool
		nextPage string
	}{
		{"first", 1, 25, false, true, "2"},
		{"middle", 2, 25, true, true, "3"},
		{"last", 3, 25, true, false, ""},
		{"single", 1, 5, false, false, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			search := data.SearchState{Results: results[:c.results], Page: c.page, ResultsPerPage: 10}
			if err := view.Render(page.Pagination, search); err != nil {
				t.Fatalf("Failed to render pagination: %s", err)
			}
			region := page.Pagination.Anchor().Selection()
			if got := region.Find(".pagination__btn--prev").Length() == 1; got != c.prev {
				t.Fatalf("Previous button shown = %v", got)
			}
			next := region.Find(".pagination__btn--next")
			if got := next.Length() == 1; got != c.next {
				t.Fatalf("Next button shown = %v", got)
			}
			if c.next && next.AttrOr("data-goto", "") != c.nextPage {
				t.Fatalf("Expected next to go to %s", c.nextPage)
			}
		})
	}

	search := data.SearchState{Results: results, Page: 2, ResultsPerPage: 10}
	view.Render(page.Pagination, search)
	msg, err := page.Click(ANCHOR_PAGINATION, elementIndex(t, page.Pagination.Anchor(), ".pagination__btn--next span"))
	if err != nil || msg != (messages.PageRequested{Page: 3}) {
		t.Fatalf("Expected PageRequested{3}, got %v %v", msg, err)
	}
}

func TestSearchView(t *testing.T) {
	page := newPage(t)
	msg, err := page.Submit(ANCHOR_SEARCH, map[string]string{"query": "pizza"})
	if err != nil || msg != (messages.SearchSubmitted{Query: "pizza"}) {
		t.Fatalf("Expected SearchSubmitted{pizza}, got %v %v", msg, err)
	}
	if query := page.Search.Query(); query != "" {
		t.Fatalf("Expected the field to be wiped, got %q", query)
	}
	if _, err := page.Submit(ANCHOR_RESULTS, nil); err == nil {
		t.Fatal("Expected a region without a form to reject submissions")
	}
}

func TestUploadView(t *testing.T) {
	page := newPage(t)
	msg, err := page.Submit(ANCHOR_UPLOAD, map[string]string{
		"title":         "Mine",
		"servings":      "2",
		"cookingTime":   "20",
		"ingredient-10": "1, kg, rice",
		"ingredient-2":  ",,salt",
		"ingredient-1":  "0.5, l, water",
	})
	if err != nil {
		t.Fatalf("Failed to submit: %s", err)
	}
	uploaded, ok := msg.(messages.RecipeUploaded)
	if !ok {
		t.Fatalf("Expected RecipeUploaded, got %T", msg)
	}
	expected := []string{"0.5, l, water", ",,salt", "1, kg, rice"}
	if diff := cmp.Diff(expected, uploaded.Draft.Ingredients); diff != "" {
		t.Fatalf("Ingredient order mismatch (-want +got):\n%s", diff)
	}

	t.Run("dialogue", func(t *testing.T) {
		if page.Upload.IsOpen() {
			t.Fatal("Expected the dialogue to start closed")
		}
		view.RenderSuccess(page.Upload, "")
		if err := page.Upload.ToggleDialogue(); err != nil {
			t.Fatalf("Failed to toggle: %s", err)
		}
		if !page.Upload.IsOpen() {
			t.Fatal("Expected the dialogue to be open")
		}
		if page.Upload.Anchor().State() != view.Rendered {
			t.Fatal("Expected the form to be restored when opening")
		}
		page.Upload.ToggleDialogue()
		if page.Upload.IsOpen() {
			t.Fatal("Expected the dialogue to close again")
		}
	})
}
