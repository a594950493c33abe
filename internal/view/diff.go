package view

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Patch compares the elements of markup with the live elements of the region
// pair by pair in document order. For every pair that differs the live text
// is replaced when the new element starts with non-blank text, and every new
// attribute is copied over. Elements are not inserted, removed or reordered;
// when the counts differ only the leading pairs are patched.
func Patch(region *Region, markup string) error {
	nodes, err := region.parse(markup)
	if err != nil {
		return err
	}
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	updated := goquery.NewDocumentFromNode(container).Find("*").Nodes
	current := region.Elements()
	if len(updated) != len(current) {
		region.Log.Debug("patching %d elements against %d live elements", len(updated), len(current))
	}
	for i, next := range updated {
		if i >= len(current) {
			break
		}
		live := current[i]
		if isEqualNode(next, live) {
			continue
		}
		if first := next.FirstChild; first != nil && first.Type == html.TextNode && strings.TrimSpace(first.Data) != "" {
			setTextContent(live, textContent(next))
		}
		for _, attr := range next.Attr {
			setAttr(live, attr)
		}
	}
	return nil
}

func isEqualNode(a, b *html.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Data != b.Data || a.Namespace != b.Namespace {
		return false
	}
	if !equalAttrs(a.Attr, b.Attr) {
		return false
	}
	ca, cb := a.FirstChild, b.FirstChild
	for ca != nil && cb != nil {
		if !isEqualNode(ca, cb) {
			return false
		}
		ca, cb = ca.NextSibling, cb.NextSibling
	}
	return ca == nil && cb == nil
}

func equalAttrs(a, b []html.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	values := make(map[string]string, len(a))
	for _, attr := range a {
		values[attr.Namespace+":"+attr.Key] = attr.Val
	}
	for _, attr := range b {
		val, ok := values[attr.Namespace+":"+attr.Key]
		if !ok || val != attr.Val {
			return false
		}
	}
	return true
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			} else {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func setTextContent(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func setAttr(n *html.Node, attr html.Attribute) {
	for i := range n.Attr {
		if n.Attr[i].Key == attr.Key && n.Attr[i].Namespace == attr.Namespace {
			n.Attr[i].Val = attr.Val
			return
		}
	}
	n.Attr = append(n.Attr, attr)
}
