package views

import (
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

// SearchView owns the search form. It only reads and clears the query field.
type SearchView struct {
	region *view.Region
}

func (s *SearchView) Anchor() *view.Region {
	return s.region
}

func (s *SearchView) field() string {
	return s.region.Selection().Find(".search__field").AttrOr("value", "")
}

// Query returns the current query and wipes the field.
func (s *SearchView) Query() string {
	query := s.field()
	s.region.Selection().Find(".search__field").SetAttr("value", "")
	return query
}

func (s *SearchView) Submit(fields map[string]string) (messages.Message, bool) {
	s.region.Selection().Find(".search__field").SetAttr("value", fields["query"])
	return messages.SearchSubmitted{Query: s.Query()}, true
}
