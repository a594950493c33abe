// Package controller runs the dispatch loop that turns page messages into
// store operations and re-renders.
package controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/logger"
	"philcali.me/forkify/internal/messages"
	"philcali.me/forkify/internal/notifications"
	"philcali.me/forkify/internal/state"
	"philcali.me/forkify/internal/views"
)

type envelope struct {
	id   string
	ctx  context.Context
	msg  messages.Message
	read func() error
	done chan error
}

// Controller owns the store and the page. Both are only touched from the
// goroutine running Run.
type Controller struct {
	Store      *state.Store
	Page       *views.Page
	Notifier   notifications.RecipeNotifier
	ModalClose time.Duration
	Log        *logger.Logger

	inbox   chan envelope
	stopped chan struct{}
}

func NewController(store *state.Store, page *views.Page, notifier notifications.RecipeNotifier, modalClose time.Duration, log *logger.Logger) *Controller {
	if notifier == nil {
		notifier = notifications.NoopNotifier{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		Store:      store,
		Page:       page,
		Notifier:   notifier,
		ModalClose: modalClose,
		Log:        log,
		inbox:      make(chan envelope),
		stopped:    make(chan struct{}),
	}
}

// Run handles queued messages one at a time until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-c.inbox:
			var err error
			if env.read != nil {
				err = env.read()
			} else {
				c.Log.Debug("[%s] dispatching %s", env.id, env.msg.Name())
				err = c.Dispatch(env.ctx, env.msg)
				if err != nil {
					c.Log.Debug("[%s] %s failed: %s", env.id, env.msg.Name(), err)
				}
			}
			env.done <- err
		}
	}
}

func (c *Controller) enqueue(ctx context.Context, env envelope) error {
	env.id = uuid.NewString()
	env.ctx = ctx
	env.done = make(chan error, 1)
	select {
	case c.inbox <- env:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopped:
		return context.Canceled
	}
	select {
	case err := <-env.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send queues msg and waits for it to be handled.
func (c *Controller) Send(ctx context.Context, msg messages.Message) error {
	return c.enqueue(ctx, envelope{msg: msg})
}

// Read runs fn on the dispatch loop, between messages.
func (c *Controller) Read(ctx context.Context, fn func(store *state.Store, page *views.Page) error) error {
	return c.enqueue(ctx, envelope{read: func() error {
		return fn(c.Store, c.Page)
	}})
}

type Snapshot struct {
	Location  string            `json:"location"`
	Regions   map[string]string `json:"regions"`
	Recipe    *data.Recipe      `json:"recipe,omitempty"`
	Search    data.SearchState  `json:"search"`
	Bookmarks []data.Recipe     `json:"bookmarks"`
	Dialogue  bool              `json:"dialogue"`
}

func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot
	err := c.Read(ctx, func(store *state.Store, page *views.Page) error {
		regions, err := page.Regions()
		if err != nil {
			return err
		}
		snapshot = Snapshot{
			Location:  page.Location,
			Regions:   regions,
			Recipe:    store.Recipe(),
			Search:    store.Search(),
			Bookmarks: store.Bookmarks(),
			Dialogue:  page.Upload.IsOpen(),
		}
		return nil
	})
	return snapshot, err
}

func (c *Controller) Document(ctx context.Context) (string, error) {
	var document string
	err := c.Read(ctx, func(store *state.Store, page *views.Page) error {
		var err error
		document, err = page.HTML()
		return err
	})
	return document, err
}

// after posts msg back into the loop once d has passed, unless the loop has
// stopped by then.
func (c *Controller) after(d time.Duration, msg messages.Message) {
	if d <= 0 {
		return
	}
	time.AfterFunc(d, func() {
		if err := c.Send(context.Background(), msg); err != nil {
			c.Log.Debug("dropped delayed %s: %s", msg.Name(), err)
		}
	})
}
