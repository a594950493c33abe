// Package state holds the current recipe, the search results and the
// bookmarks. A Store is owned by the controller's dispatch loop and is not
// safe for concurrent use.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/provider"
)

type Store struct {
	Provider provider.RecipeProvider
	Storage  data.KeyValueStore
	Log      *logger.Logger

	recipe    *data.Recipe
	search    data.SearchState
	bookmarks []data.Recipe
}

func NewStore(recipes provider.RecipeProvider, storage data.KeyValueStore, resultsPerPage int, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{
		Provider: recipes,
		Storage:  storage,
		Log:      log,
		search: data.SearchState{
			Results:        []data.SearchResultItem{},
			Page:           1,
			ResultsPerPage: resultsPerPage,
		},
		bookmarks: []data.Recipe{},
	}
}

// Init rehydrates the bookmarks. A missing key leaves the set empty.
func (s *Store) Init(ctx context.Context) error {
	raw, err := s.Storage.Get(ctx, data.BOOKMARKS_KEY)
	if err != nil {
		var nfe *exceptions.NotFoundError
		if errors.As(err, &nfe) {
			return nil
		}
		return fmt.Errorf("loading bookmarks: %w", err)
	}
	var bookmarks []data.Recipe
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		return fmt.Errorf("corrupt bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []data.Recipe{}
	}
	s.bookmarks = bookmarks
	s.Log.Debug("rehydrated %d bookmarks", len(bookmarks))
	return nil
}

// LoadRecipe never reports a failure. When the lookup fails the current
// recipe is cleared, and callers check Recipe() for nil.
func (s *Store) LoadRecipe(ctx context.Context, id string) {
	recipe, err := s.Provider.Lookup(ctx, id)
	if err != nil {
		s.Log.Warn("failed to load recipe %s: %s", id, err)
		s.recipe = nil
		return
	}
	recipe.Bookmarked = s.isBookmarked(id)
	s.recipe = &recipe
}

func (s *Store) LoadSearchResults(ctx context.Context, query string) error {
	s.search.Query = query
	results, err := s.Provider.Search(ctx, query)
	if err != nil {
		s.Log.Error("search for %q failed: %s", query, err)
		return err
	}
	s.search.Results = data.ConvertQueryResults(results, func(item data.SearchResultItem) data.SearchResultItem {
		return item
	}).Items
	s.search.Page = 1
	return nil
}

// SearchResultPage moves to page and returns its slice of results. A page
// of zero or less keeps the current page.
func (s *Store) SearchResultPage(page int) []data.SearchResultItem {
	if page <= 0 {
		page = s.search.Page
	}
	s.search.Page = page
	size := s.search.ResultsPerPage
	start := (page - 1) * size
	end := page * size
	if start > len(s.search.Results) {
		start = len(s.search.Results)
	}
	if end > len(s.search.Results) {
		end = len(s.search.Results)
	}
	items := make([]data.SearchResultItem, end-start)
	copy(items, s.search.Results[start:end])
	return items
}

// UpdateServings rescales the current recipe in place. The current servings
// must be positive.
func (s *Store) UpdateServings(servings int) {
	if s.recipe == nil {
		return
	}
	ratio := float64(servings) / float64(s.recipe.Servings)
	for i := range s.recipe.Ingredients {
		if q := s.recipe.Ingredients[i].Quantity; q != nil {
			scaled := *q * ratio
			s.recipe.Ingredients[i].Quantity = &scaled
		}
	}
	s.recipe.Servings = servings
}

func (s *Store) Bookmark(ctx context.Context, recipe data.Recipe) error {
	snapshot := recipe.Clone()
	snapshot.Bookmarked = true
	s.bookmarks = append(s.bookmarks, snapshot)
	if s.recipe != nil && s.recipe.ID == recipe.ID {
		s.recipe.Bookmarked = true
	}
	return s.persist(ctx)
}

// Unbookmark removes the first bookmark with id. An unknown id leaves the
// set untouched but is still persisted.
func (s *Store) Unbookmark(ctx context.Context, id string) error {
	for i, bookmark := range s.bookmarks {
		if bookmark.ID == id {
			s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
			break
		}
	}
	if s.recipe != nil && s.recipe.ID == id {
		s.recipe.Bookmarked = false
	}
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.bookmarks)
	if err != nil {
		return err
	}
	if err := s.Storage.Put(ctx, data.BOOKMARKS_KEY, raw); err != nil {
		return fmt.Errorf("saving bookmarks: %w", err)
	}
	return nil
}

func (s *Store) isBookmarked(id string) bool {
	for _, bookmark := range s.bookmarks {
		if bookmark.ID == id {
			return true
		}
	}
	return false
}

// Recipe returns a copy of the current recipe, or nil when none is loaded.
func (s *Store) Recipe() *data.Recipe {
	if s.recipe == nil {
		return nil
	}
	recipe := s.recipe.Clone()
	return &recipe
}

func (s *Store) Search() data.SearchState {
	search := s.search
	search.Results = append([]data.SearchResultItem{}, s.search.Results...)
	return search
}

func (s *Store) Bookmarks() []data.Recipe {
	bookmarks := make([]data.Recipe, len(s.bookmarks))
	for i, bookmark := range s.bookmarks {
		bookmarks[i] = bookmark.Clone()
	}
	return bookmarks
}
