package views

import (
	"fmt"
	"html/template"
	"strings"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/view"
)

var previewTemplate = template.Must(template.New("preview").Parse(`
<li class="preview">
  <a class="preview__link {{if .Active}}preview__link--active{{end}}" href="#{{.ID}}">
    <figure class="preview__fig">
      <img src="{{.Image}}" alt="{{.Title}}" />
    </figure>
    <div class="preview__data">
      <h4 class="preview__title">{{.Title}}</h4>
      <p class="preview__publisher">{{.Publisher}}</p>
      <div class="preview__user-generated {{if not .Key}}hidden{{end}}">
        <svg>
          <use href="{{.Icons}}#icon-user"></use>
        </svg>
      </div>
    </div>
  </a>
</li>`))

// PreviewView renders a single list entry. It has no region of its own and
// is only used through ResultsView and BookmarksView.
type PreviewView struct {
	Icons    string
	Location func() string
}

type previewData struct {
	data.SearchResultItem
	Icons  string
	Active bool
}

func (p *PreviewView) Anchor() *view.Region {
	return nil
}

func (p *PreviewView) Markup(d any) (string, error) {
	item, ok := d.(data.SearchResultItem)
	if !ok {
		return "", fmt.Errorf("preview cannot render %T", d)
	}
	active := false
	if p.Location != nil {
		active = item.ID == strings.TrimPrefix(p.Location(), "#")
	}
	var b strings.Builder
	err := previewTemplate.Execute(&b, previewData{
		SearchResultItem: item,
		Icons:            p.Icons,
		Active:           active,
	})
	return b.String(), err
}

func (p *PreviewView) list(items []data.SearchResultItem) (string, error) {
	var b strings.Builder
	for _, item := range items {
		markup, err := p.Markup(item)
		if err != nil {
			return "", err
		}
		b.WriteString(markup)
	}
	return b.String(), nil
}
