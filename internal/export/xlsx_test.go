package export_test

import (
	"bytes"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/export"
)

func TestWriteBookmarks(t *testing.T) {
	bookmarks := []data.Recipe{
		{
			ID:          "pizza-01",
			Title:       "Pizza",
			Publisher:   "Closet Cooking",
			Servings:    4,
			CookingTime: 45,
			Ingredients: []data.Ingredient{
				{Quantity: aws.Float64(1.5), Unit: "cups", Description: "flour"},
				{Description: "salt"},
			},
		},
		{ID: "mine", Title: "Mine", Servings: 2, CookingTime: 10, Key: "k"},
	}
	var buf bytes.Buffer
	if err := export.WriteBookmarks(&buf, bookmarks); err != nil {
		t.Fatalf("Failed to write bookmarks: %s", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to read workbook: %s", err)
	}
	defer f.Close()

	t.Run(export.SHEET_BOOKMARKS, func(t *testing.T) {
		rows, err := f.GetRows(export.SHEET_BOOKMARKS)
		if err != nil {
			t.Fatalf("Failed to read rows: %s", err)
		}
		if len(rows) != 3 {
			t.Fatalf("Expected a header and two rows, got %d", len(rows))
		}
		if diff := cmp.Diff([]string{"pizza-01", "Pizza", "Closet Cooking", "4", "45"}, rows[1][:5]); diff != "" {
			t.Fatalf("Row mismatch (-want +got):\n%s", diff)
		}
		if rows[2][7] != "k" {
			t.Fatalf("Expected the key column, got %v", rows[2])
		}
	})

	t.Run(export.SHEET_INGREDIENTS, func(t *testing.T) {
		rows, err := f.GetRows(export.SHEET_INGREDIENTS)
		if err != nil {
			t.Fatalf("Failed to read rows: %s", err)
		}
		expected := [][]string{
			{"recipe_id", "quantity", "unit", "description"},
			{"pizza-01", "1.5", "cups", "flour"},
			{"pizza-01", "", "", "salt"},
		}
		if diff := cmp.Diff(expected, rows); diff != "" {
			t.Fatalf("Ingredients mismatch (-want +got):\n%s", diff)
		}
	})
}
