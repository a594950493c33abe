package view

import (
	"html/template"
	"strings"
)

var statusTemplates = template.Must(template.New("status").Parse(`
{{define "spinner"}}<div class="spinner">
  <svg>
    <use href="{{.Icons}}#icon-loader"></use>
  </svg>
</div>{{end}}
{{define "error"}}<div class="error">
  <div>
    <svg>
      <use href="{{.Icons}}#icon-alert-triangle"></use>
    </svg>
  </div>
  <p>{{.Message}}</p>
</div>{{end}}
{{define "message"}}<div class="message">
  <div>
    <svg>
      <use href="{{.Icons}}#icon-smile"></use>
    </svg>
  </div>
  <p>{{.Message}}</p>
</div>{{end}}
`))

type statusBlock struct {
	Icons   string
	Message string
}

func statusMarkup(name string, icons string, message string) (string, error) {
	var b strings.Builder
	err := statusTemplates.ExecuteTemplate(&b, name, statusBlock{
		Icons:   icons,
		Message: message,
	})
	return b.String(), err
}
