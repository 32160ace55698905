package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// parseHTML parses an HTML document into a node tree.
func parseHTML(content string) (*html.Node, error) {
	return html.Parse(strings.NewReader(content))
}

// isElem reports whether n is an element node with the given tag name.
func isElem(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether n carries the exact CSS class.
func hasClass(n *html.Node, name string) bool {
	for _, class := range strings.Fields(attr(n, "class")) {
		if class == name {
			return true
		}
	}
	return false
}

// hasClassMatch reports whether any CSS class token of n contains one of the
// given substrings. Nature's markup varies class prefixes across templates,
// so selectors match on the stable fragment.
func hasClassMatch(n *html.Node, substrings ...string) bool {
	for _, class := range strings.Fields(attr(n, "class")) {
		for _, sub := range substrings {
			if strings.Contains(class, sub) {
				return true
			}
		}
	}
	return false
}

// findFirst returns the first node in document order satisfying the
// predicate, or nil.
func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// findAll returns every node satisfying the predicate in document order.
func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// nodeText collects the text of n and its descendants. Fragments are trimmed
// and empty ones dropped, so the result joins cleanly with sep regardless of
// source markup whitespace.
func nodeText(n *html.Node, sep string) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if t := strings.TrimSpace(node.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.Join(parts, sep)
}
