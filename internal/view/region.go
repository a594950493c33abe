// Package view renders markup into regions of a parsed HTML document and
// patches them in place on later updates.
package view

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"philcali.me/forkify/internal/logger"
)

type State int

const (
	Empty State = iota
	Rendering
	Rendered
	Spinner
	Error
	Success
)

func (s State) String() string {
	switch s {
	case Rendering:
		return "rendering"
	case Rendered:
		return "rendered"
	case Spinner:
		return "spinner"
	case Error:
		return "error"
	case Success:
		return "success"
	}
	return "empty"
}

// Region is a live element of the page that a view owns the contents of.
type Region struct {
	Node  *html.Node
	Icons string
	Log   *logger.Logger

	data  any
	state State
}

func NewRegion(node *html.Node, icons string, log *logger.Logger) *Region {
	if log == nil {
		log = logger.Discard()
	}
	return &Region{
		Node:  node,
		Icons: icons,
		Log:   log,
	}
}

func (r *Region) Data() any {
	return r.data
}

func (r *Region) State() State {
	return r.state
}

// Selection wraps the region node for goquery traversal.
func (r *Region) Selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(r.Node).Selection
}

// Elements lists every element below the region in document order.
func (r *Region) Elements() []*html.Node {
	return r.Selection().Find("*").Nodes
}

func (r *Region) HTML() (string, error) {
	var b strings.Builder
	for c := r.Node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (r *Region) wipe() {
	for c := r.Node.FirstChild; c != nil; c = r.Node.FirstChild {
		r.Node.RemoveChild(c)
	}
}

// SetHTML replaces the region contents with markup.
func (r *Region) SetHTML(markup string) error {
	nodes, err := r.parse(markup)
	if err != nil {
		return err
	}
	r.wipe()
	for _, n := range nodes {
		r.Node.AppendChild(n)
	}
	return nil
}

// parse builds detached nodes from markup using the region as the parsing
// context.
func (r *Region) parse(markup string) ([]*html.Node, error) {
	context := r.Node
	if context == nil || context.Type != html.ElementNode {
		return nil, fmt.Errorf("region is not an element")
	}
	return html.ParseFragment(strings.NewReader(markup), context)
}
