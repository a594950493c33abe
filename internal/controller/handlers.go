package controller

import (
	"context"

	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/view"
)

// Dispatch handles a single message. It must only be called from the loop,
// or before the loop is started.
func (c *Controller) Dispatch(ctx context.Context, msg messages.Message) error {
	switch m := msg.(type) {
	case messages.PageLoaded:
		return c.pageLoaded(ctx, m.Hash)
	case messages.LocationChanged:
		return c.locationChanged(ctx, m.Hash)
	case messages.SearchSubmitted:
		return c.searchSubmitted(ctx, m.Query)
	case messages.PageRequested:
		return c.pageRequested(m.Page)
	case messages.ServingsChanged:
		return c.servingsChanged(m.Servings)
	case messages.BookmarkToggled:
		return c.bookmarkToggled(ctx)
	case messages.RecipeUploaded:
		return c.recipeUploaded(ctx, m)
	case messages.DialogueToggled:
		return c.Page.Upload.ToggleDialogue()
	case messages.Clicked:
		next, err := c.Page.Click(m.Anchor, m.Element)
		if err != nil || next == nil {
			return err
		}
		return c.Dispatch(ctx, next)
	case messages.Submitted:
		next, err := c.Page.Submit(m.Anchor, m.Fields)
		if err != nil || next == nil {
			return err
		}
		return c.Dispatch(ctx, next)
	}
	return exceptions.Validation("Unknown message %T", msg)
}

func (c *Controller) pageLoaded(ctx context.Context, hash string) error {
	if err := view.Render(c.Page.Bookmarks, c.Store.Bookmarks()); err != nil {
		return err
	}
	if hash == "" {
		hash = c.Page.Location
	}
	return c.locationChanged(ctx, hash)
}

func (c *Controller) locationChanged(ctx context.Context, hash string) error {
	id := c.Page.SetLocation(hash)
	if id == "" {
		return nil
	}
	err := c.loadRecipe(ctx, id)
	if err != nil {
		c.Log.Warn("failed to show recipe %s: %s", id, err)
		return view.RenderError(c.Page.Recipe, "")
	}
	return nil
}

func (c *Controller) loadRecipe(ctx context.Context, id string) error {
	if err := view.RenderSpinner(c.Page.Recipe); err != nil {
		return err
	}
	if err := view.Update(c.Page.Results, c.Store.SearchResultPage(0)); err != nil {
		return err
	}
	c.Store.LoadRecipe(ctx, id)
	if err := view.Render(c.Page.Recipe, c.Store.Recipe()); err != nil {
		return err
	}
	return view.Update(c.Page.Bookmarks, c.Store.Bookmarks())
}

func (c *Controller) searchSubmitted(ctx context.Context, query string) error {
	if query == "" {
		return nil
	}
	if err := view.RenderSpinner(c.Page.Results); err != nil {
		return err
	}
	if err := c.Store.LoadSearchResults(ctx, query); err != nil {
		if rerr := view.RenderError(c.Page.Results, err.Error()); rerr != nil {
			c.Log.Error("failed to render search error: %s", rerr)
		}
		return err
	}
	return c.pageRequested(0)
}

func (c *Controller) pageRequested(page int) error {
	if err := view.Render(c.Page.Results, c.Store.SearchResultPage(page)); err != nil {
		return err
	}
	return view.Render(c.Page.Pagination, c.Store.Search())
}

func (c *Controller) servingsChanged(servings int) error {
	if servings <= 0 {
		return exceptions.Validation("Servings must be positive, got %d", servings)
	}
	if c.Store.Recipe() == nil {
		return exceptions.Validation("No recipe is loaded")
	}
	c.Store.UpdateServings(servings)
	return view.Update(c.Page.Recipe, c.Store.Recipe())
}

func (c *Controller) bookmarkToggled(ctx context.Context) error {
	recipe := c.Store.Recipe()
	if recipe == nil {
		return exceptions.Validation("No recipe is loaded")
	}
	var err error
	if !recipe.Bookmarked {
		err = c.Store.Bookmark(ctx, *recipe)
	} else {
		err = c.Store.Unbookmark(ctx, recipe.ID)
	}
	if err != nil {
		return err
	}
	if err := view.Update(c.Page.Recipe, c.Store.Recipe()); err != nil {
		return err
	}
	return view.Render(c.Page.Bookmarks, c.Store.Bookmarks())
}

func (c *Controller) recipeUploaded(ctx context.Context, m messages.RecipeUploaded) error {
	if err := view.RenderSpinner(c.Page.Upload); err != nil {
		return err
	}
	if err := c.Store.UploadRecipe(ctx, m.Draft); err != nil {
		if rerr := view.RenderError(c.Page.Upload, err.Error()); rerr != nil {
			c.Log.Error("failed to render upload error: %s", rerr)
		}
		return err
	}
	recipe := c.Store.Recipe()
	if err := view.Render(c.Page.Recipe, recipe); err != nil {
		return err
	}
	if err := view.RenderSuccess(c.Page.Upload, ""); err != nil {
		return err
	}
	if err := view.Render(c.Page.Bookmarks, c.Store.Bookmarks()); err != nil {
		return err
	}
	c.Page.SetLocation("#" + recipe.ID)
	if err := c.Notifier.RecipeUploaded(ctx, *recipe); err != nil {
		c.Log.Warn("failed to announce recipe %s: %s", recipe.ID, err)
	}
	c.after(c.ModalClose, messages.DialogueToggled{})
	return nil
}
