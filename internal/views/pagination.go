package views

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

var paginationTemplate = template.Must(template.New("pagination").Parse(`
{{if .Prev}}<button data-goto="{{.Prev}}" class="btn--inline pagination__btn--prev">
  <svg class="search__icon">
    <use href="{{.Icons}}#icon-arrow-left"></use>
  </svg>
  <span>Page {{.Prev}}</span>
</button>{{end}}
{{if .Next}}<button data-goto="{{.Next}}" class="btn--inline pagination__btn--next">
  <span>Page {{.Next}}</span>
  <svg class="search__icon">
    <use href="{{.Icons}}#icon-arrow-right"></use>
  </svg>
</button>{{end}}`))

type PaginationView struct {
	region *view.Region
}

type paginationData struct {
	Icons string
	Prev  int
	Next  int
}

func (p *PaginationView) Anchor() *view.Region {
	return p.region
}

// Markup shows a next button on the first page, a previous button on the
// last, and both in between. A single page shows nothing.
func (p *PaginationView) Markup(d any) (string, error) {
	search, ok := d.(data.SearchState)
	if !ok {
		return "", fmt.Errorf("pagination cannot render %T", d)
	}
	page := search.Page
	pages := search.NumberOfPages()
	buttons := paginationData{Icons: p.region.Icons}
	switch {
	case page == 1 && pages > 1:
		buttons.Next = page + 1
	case page == pages && pages > 1:
		buttons.Prev = page - 1
	case page < pages:
		buttons.Prev = page - 1
		buttons.Next = page + 1
	default:
		return "", nil
	}
	var b strings.Builder
	err := paginationTemplate.Execute(&b, buttons)
	return b.String(), err
}

func (p *PaginationView) Click(target *goquery.Selection) (messages.Message, bool) {
	button := target.Closest(".btn--inline")
	if button.Length() == 0 {
		return nil, false
	}
	page, err := strconv.Atoi(button.AttrOr("data-goto", ""))
	if err != nil {
		return nil, false
	}
	return messages.PageRequested{Page: page}, true
}
