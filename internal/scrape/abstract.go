package scrape

import (
	"golang.org/x/net/html"
)

// ExtractAbstract pulls the public abstract from an article page. Nature
// shows abstracts even for paywalled articles; three locations are tried in
// order, ending with the meta description. The second return value is false
// when no abstract text was found.
func ExtractAbstract(pageHTML string) (string, bool) {
	doc, err := parseHTML(pageHTML)
	if err != nil {
		return "", false
	}

	if div := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "div") && attr(n, "id") == "Abs1-content"
	}); div != nil {
		if text := nodeText(div, " "); text != "" {
			return text, true
		}
	}

	if section := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "section") && attr(n, "data-title") == "Abstract"
	}); section != nil {
		if content := findFirst(section, func(n *html.Node) bool {
			return isElem(n, "div") && hasClass(n, "c-article-section__content")
		}); content != nil {
			if text := nodeText(content, " "); text != "" {
				return text, true
			}
		}
	}

	if meta := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "meta") && attr(n, "name") == "description"
	}); meta != nil {
		if content := attr(meta, "content"); content != "" {
			return content, true
		}
	}

	return "", false
}
