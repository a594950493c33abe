// Package export writes the bookmarks out as a spreadsheet.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"
	"philcali.me/forkify/internal/data"
)

const (
	SHEET_BOOKMARKS   = "Bookmarks"
	SHEET_INGREDIENTS = "Ingredients"
)

// WriteBookmarks writes one row per bookmark and one row per ingredient on
// a second sheet, keyed by recipe id.
func WriteBookmarks(w io.Writer, bookmarks []data.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SHEET_BOOKMARKS); err != nil {
		return err
	}
	if _, err := f.NewSheet(SHEET_INGREDIENTS); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SHEET_BOOKMARKS)
	if err != nil {
		return err
	}
	header := []interface{}{"id", "title", "publisher", "servings", "cooking_time", "source_url", "image_url", "key"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, recipe := range bookmarks {
		row := []interface{}{
			recipe.ID, recipe.Title, recipe.Publisher, recipe.Servings, recipe.CookingTime,
			recipe.SourceURL, recipe.Image, recipe.Key,
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cellAddr, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if err := f.SetSheetRow(SHEET_INGREDIENTS, "A1", &[]interface{}{"recipe_id", "quantity", "unit", "description"}); err != nil {
		return err
	}
	row := 2
	for _, recipe := range bookmarks {
		for _, ingredient := range recipe.Ingredients {
			var quantity interface{}
			if ingredient.Quantity != nil {
				quantity = *ingredient.Quantity
			}
			cellAddr, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{recipe.ID, quantity, ingredient.Unit, ingredient.Description}
			if err := f.SetSheetRow(SHEET_INGREDIENTS, cellAddr, &values); err != nil {
				return err
			}
			row++
		}
	}
	_, err = f.WriteTo(w)
	return err
}
