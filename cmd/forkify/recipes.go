package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/export"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/state"
	"philcali.me/forkify/internal/views"
)

var (
	searchPage   int
	showServings int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print a page of search results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, stop, err := startApp(cmd.Context())
		if err != nil {
			return err
		}
		defer stop()
		ctx := cmd.Context()
		query := strings.Join(args, " ")
		if err := a.Controller.Send(ctx, messages.SearchSubmitted{Query: query}); err != nil {
			return err
		}
		if err := a.Controller.Send(ctx, messages.PageRequested{Page: searchPage}); err != nil {
			return err
		}
		return a.Controller.Read(ctx, func(store *state.Store, page *views.Page) error {
			search := store.Search()
			fmt.Printf("%d results for %q, page %d of %d\n", len(search.Results), search.Query, search.Page, search.NumberOfPages())
			for _, item := range store.SearchResultPage(0) {
				fmt.Printf("  %-26s %s (%s)\n", item.ID, item.Title, item.Publisher)
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, stop, err := startApp(cmd.Context())
		if err != nil {
			return err
		}
		defer stop()
		ctx := cmd.Context()
		if err := a.Controller.Send(ctx, messages.LocationChanged{Hash: args[0]}); err != nil {
			return err
		}
		return a.Controller.Read(ctx, func(store *state.Store, page *views.Page) error {
			if store.Recipe() == nil {
				return fmt.Errorf("could not load recipe %s", args[0])
			}
			if showServings > 0 {
				store.UpdateServings(showServings)
			}
			printRecipe(*store.Recipe())
			return nil
		})
	},
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark <id>",
	Short: "Toggle the bookmark of a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, stop, err := startApp(cmd.Context())
		if err != nil {
			return err
		}
		defer stop()
		ctx := cmd.Context()
		for _, msg := range []messages.Message{messages.LocationChanged{Hash: args[0]}, messages.BookmarkToggled{}} {
			if err := a.Controller.Send(ctx, msg); err != nil {
				return err
			}
		}
		return a.Controller.Read(ctx, func(store *state.Store, page *views.Page) error {
			for _, bookmark := range store.Bookmarks() {
				fmt.Printf("  %-26s %s\n", bookmark.ID, bookmark.Title)
			}
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the bookmarks to an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, stop, err := startApp(cmd.Context())
		if err != nil {
			return err
		}
		defer stop()
		var bookmarks []data.Recipe
		err = a.Controller.Read(cmd.Context(), func(store *state.Store, page *views.Page) error {
			bookmarks = store.Bookmarks()
			return nil
		})
		if err != nil {
			return err
		}
		out, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := export.WriteBookmarks(out, bookmarks); err != nil {
			out.Close()
			return err
		}
		log.Info("wrote %d bookmarks to %s", len(bookmarks), args[0])
		return out.Close()
	},
}

func printRecipe(recipe data.Recipe) {
	fmt.Printf("%s\n", strings.ToUpper(recipe.Title))
	fmt.Printf("by %s, %d minutes, %d servings\n", recipe.Publisher, recipe.CookingTime, recipe.Servings)
	for _, ingredient := range recipe.Ingredients {
		quantity := ""
		if ingredient.Quantity != nil {
			quantity = strconv.FormatFloat(*ingredient.Quantity, 'f', -1, 64)
		}
		fmt.Printf("  %6s %-8s %s\n", quantity, ingredient.Unit, ingredient.Description)
	}
	fmt.Printf("%s\n", recipe.SourceURL)
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page of results to print")
	showCmd.Flags().IntVar(&showServings, "servings", 0, "Scale the recipe to this many servings")
	rootCmd.AddCommand(searchCmd, showCmd, bookmarkCmd, exportCmd)
}
