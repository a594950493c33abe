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

var recipeTemplate = template.Must(template.New("recipe").Funcs(template.FuncMap{
	"quantity": formatQuantity,
	"add": func(a, b int) int {
		return a + b
	},
}).Parse(`
<figure class="recipe__fig">
  <img src="{{.Image}}" alt="{{.Title}}" class="recipe__img" />
  <h1 class="recipe__title">
    <span>{{.Title}}</span>
  </h1>
</figure>
<div class="recipe__details">
  <div class="recipe__info">
    <svg class="recipe__info-icon">
      <use href="{{$.Icons}}#icon-clock"></use>
    </svg>
    <span class="recipe__info-data recipe__info-data--minutes">{{.CookingTime}}</span>
    <span class="recipe__info-text">minutes</span>
  </div>
  <div class="recipe__info">
    <svg class="recipe__info-icon">
      <use href="{{$.Icons}}#icon-users"></use>
    </svg>
    <span class="recipe__info-data recipe__info-data--people">{{.Servings}}</span>
    <span class="recipe__info-text">servings</span>
    <div class="recipe__info-buttons">
      <button class="btn--tiny btn--update-servings" data-update-to="{{add .Servings -1}}">
        <svg>
          <use href="{{$.Icons}}#icon-minus-circle"></use>
        </svg>
      </button>
      <button class="btn--tiny btn--update-servings" data-update-to="{{add .Servings 1}}">
        <svg>
          <use href="{{$.Icons}}#icon-plus-circle"></use>
        </svg>
      </button>
    </div>
  </div>
  <div class="recipe__user-generated {{if not .Key}}hidden{{end}}">
    <svg>
      <use href="{{$.Icons}}#icon-user"></use>
    </svg>
  </div>
  <button class="btn--round btn--bookmark">
    <svg class="">
      <use href="{{$.Icons}}#icon-bookmark{{if .Bookmarked}}-fill{{end}}"></use>
    </svg>
  </button>
</div>
<div class="recipe__ingredients">
  <h2 class="heading--2">Recipe ingredients</h2>
  <ul class="recipe__ingredient-list">
    {{range .Ingredients}}
    <li class="recipe__ingredient">
      <svg class="recipe__icon">
        <use href="{{$.Icons}}#icon-check"></use>
      </svg>
      <div class="recipe__quantity">{{quantity .Quantity}}</div>
      <div class="recipe__description">
        <span class="recipe__unit">{{.Unit}}</span>
        {{.Description}}
      </div>
    </li>
    {{end}}
  </ul>
</div>
<div class="recipe__directions">
  <h2 class="heading--2">How to cook it</h2>
  <p class="recipe__directions-text">
    This recipe was carefully designed and tested by
    <span class="recipe__publisher">{{.Publisher}}</span>. Please check out
    directions at their website.
  </p>
  <a class="btn--small recipe__btn" href="{{.SourceURL}}" target="_blank">
    <span>Directions</span>
    <svg class="search__icon">
      <use href="{{$.Icons}}#icon-arrow-right"></use>
    </svg>
  </a>
</div>`))

type RecipeView struct {
	region *view.Region
}

type recipeData struct {
	data.Recipe
	Icons string
}

func (r *RecipeView) Anchor() *view.Region {
	return r.region
}

func (r *RecipeView) Markup(d any) (string, error) {
	var recipe data.Recipe
	switch v := d.(type) {
	case data.Recipe:
		recipe = v
	case *data.Recipe:
		recipe = *v
	default:
		return "", fmt.Errorf("recipe cannot render %T", d)
	}
	var b strings.Builder
	err := recipeTemplate.Execute(&b, recipeData{Recipe: recipe, Icons: r.region.Icons})
	return b.String(), err
}

func (r *RecipeView) ErrorMessage() string {
	return "We could not find that recipe. Please try another one!"
}

func (r *RecipeView) SuccessMessage() string {
	return ""
}

// Click handles the servings buttons and the bookmark button.
func (r *RecipeView) Click(target *goquery.Selection) (messages.Message, bool) {
	if button := target.Closest(".btn--update-servings"); button.Length() > 0 {
		servings, err := strconv.Atoi(button.AttrOr("data-update-to", ""))
		if err != nil || servings <= 0 {
			return nil, false
		}
		return messages.ServingsChanged{Servings: servings}, true
	}
	if target.Closest(".btn--bookmark").Length() > 0 {
		return messages.BookmarkToggled{}, true
	}
	return nil, false
}
