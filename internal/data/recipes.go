package data

type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceURL   string       `json:"sourceUrl"`
	Image       string       `json:"image"`
	Servings    int          `json:"servings"`
	CookingTime int          `json:"cookingTime"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"`
	Bookmarked  bool         `json:"bookmarked,omitempty"`
}

// Clone returns a deep copy, so that a bookmark snapshot is not affected by a
// later UpdateServings on the current recipe.
func (r Recipe) Clone() Recipe {
	ingredients := make([]Ingredient, len(r.Ingredients))
	for i, in := range r.Ingredients {
		if in.Quantity != nil {
			q := *in.Quantity
			in.Quantity = &q
		}
		ingredients[i] = in
	}
	r.Ingredients = ingredients
	return r
}

func (r Recipe) Summary() SearchResultItem {
	return SearchResultItem{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		Image:     r.Image,
		Key:       r.Key,
	}
}

type SearchResultItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Image     string `json:"image"`
	Key       string `json:"key,omitempty"`
}

// RecipeDraft is the upload form as the visitor submitted it. Ingredients keeps
// the raw "quantity, unit, description" fields in form order.
type RecipeDraft struct {
	Title       string
	SourceURL   string
	Image       string
	Publisher   string
	CookingTime string
	Servings    string
	Ingredients []string
}
