package testsupport

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// ParseHTML parses a rendered fragment into a document tree.
func ParseHTML(t *testing.T, payload []byte) *html.Node {
	t.Helper()

	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// FindAll returns every element node matching the predicate in document order.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// FindFirst returns the first matching element or nil.
func FindFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if found := FindAll(root, match); len(found) > 0 {
		return found[0]
	}
	return nil
}

// ByTag matches elements by tag name.
func ByTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

// ByAttr matches elements carrying attr=value.
func ByAttr(attr, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		got, ok := Attr(n, attr)
		return ok && got == value
	}
}

// Attr returns the attribute value and whether it is present.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// Text returns the whitespace-collapsed text content of a node.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if n != nil {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
