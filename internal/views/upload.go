package views

import (
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

const INGREDIENT_FIELDS = 6

var uploadTemplate = template.Must(template.New("upload").Funcs(template.FuncMap{
	"inc": func(i int) int {
		return i + 1
	},
}).Parse(`
<div class="upload__column">
  <h3 class="upload__heading">Recipe data</h3>
  <label>Title</label>
  <input value="{{.Title}}" required name="title" type="text" />
  <label>URL</label>
  <input value="{{.SourceURL}}" required name="sourceUrl" type="text" />
  <label>Image URL</label>
  <input value="{{.Image}}" required name="image" type="text" />
  <label>Publisher</label>
  <input value="{{.Publisher}}" required name="publisher" type="text" />
  <label>Prep time</label>
  <input value="{{.CookingTime}}" required name="cookingTime" type="number" />
  <label>Servings</label>
  <input value="{{.Servings}}" required name="servings" type="number" />
</div>
<div class="upload__column">
  <h3 class="upload__heading">Ingredients</h3>
  {{range $i, $value := .Ingredients}}
  <label>Ingredient {{$i | inc}}</label>
  <input value="{{$value}}" type="text" name="ingredient-{{$i | inc}}" placeholder="Format: 'Quantity,Unit,Description'" />
  {{end}}
</div>
<button class="btn upload__btn">
  <svg>
    <use href="{{.Icons}}#icon-upload-cloud"></use>
  </svg>
  <span>Upload</span>
</button>`))

type UploadView struct {
	region   *view.Region
	document *html.Node
}

type uploadData struct {
	data.RecipeDraft
	Icons string
}

func (u *UploadView) Anchor() *view.Region {
	return u.region
}

// Markup renders the upload form filled in with a draft.
func (u *UploadView) Markup(d any) (string, error) {
	draft, ok := d.(data.RecipeDraft)
	if !ok {
		return "", fmt.Errorf("upload cannot render %T", d)
	}
	ingredients := make([]string, INGREDIENT_FIELDS)
	copy(ingredients, draft.Ingredients)
	draft.Ingredients = ingredients
	var b strings.Builder
	err := uploadTemplate.Execute(&b, uploadData{RecipeDraft: draft, Icons: u.region.Icons})
	return b.String(), err
}

func (u *UploadView) ErrorMessage() string {
	return "The recipe could not be uploaded!"
}

func (u *UploadView) SuccessMessage() string {
	return "Recipe was successfully uploaded :)"
}

func (u *UploadView) dialogue() *goquery.Selection {
	return goquery.NewDocumentFromNode(u.document).Find(".overlay, .add-recipe-window")
}

func (u *UploadView) IsOpen() bool {
	return !goquery.NewDocumentFromNode(u.document).Find(".add-recipe-window").HasClass("hidden")
}

// ToggleDialogue shows or hides the upload window. Opening it over a status
// block brings the empty form back.
func (u *UploadView) ToggleDialogue() error {
	u.dialogue().ToggleClass("hidden")
	if u.IsOpen() && u.region.State() != view.Rendered {
		return view.Render(u, data.RecipeDraft{})
	}
	return nil
}

// Submit turns the form fields into a draft. Ingredient fields keep the
// numeric order of their names.
func (u *UploadView) Submit(fields map[string]string) (messages.Message, bool) {
	draft := data.RecipeDraft{
		Title:       fields["title"],
		SourceURL:   fields["sourceUrl"],
		Image:       fields["image"],
		Publisher:   fields["publisher"],
		CookingTime: fields["cookingTime"],
		Servings:    fields["servings"],
	}
	var names []string
	for name := range fields {
		if strings.HasPrefix(name, "ingredient") {
			names = append(names, name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, aerr := strconv.Atoi(strings.TrimPrefix(names[i], "ingredient-"))
		b, berr := strconv.Atoi(strings.TrimPrefix(names[j], "ingredient-"))
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		draft.Ingredients = append(draft.Ingredients, fields[name])
	}
	return messages.RecipeUploaded{Draft: draft}, true
}
