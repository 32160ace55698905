package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/ndrozd/exordium/internal/model"
)

// ExtractEditorial pulls the publicly visible parts of an editorial article
// page: title, first body paragraph, and the full text when more than one
// paragraph sits outside the paywall.
func ExtractEditorial(pageHTML string) model.Editorial {
	doc, err := parseHTML(pageHTML)
	if err != nil {
		return model.Editorial{}
	}

	var ed model.Editorial

	h1 := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "h1") && hasClassMatch(n, "article-title", "ArticleTitle")
	})
	if h1 == nil {
		h1 = findFirst(doc, func(n *html.Node) bool { return isElem(n, "h1") })
	}
	if h1 != nil {
		ed.Title = nodeText(h1, " ")
	}

	var paragraphs []*html.Node
	if body := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "div") && hasClassMatch(n, "article-body", "body")
	}); body != nil {
		paragraphs = findAll(body, func(n *html.Node) bool { return isElem(n, "p") })
	}
	if len(paragraphs) > 0 {
		ed.FirstParagraph = nodeText(paragraphs[0], " ")
	}

	if len(paragraphs) > 1 {
		parts := make([]string, 0, len(paragraphs))
		for _, p := range paragraphs {
			parts = append(parts, nodeText(p, " "))
		}
		ed.FullText = strings.Join(parts, "\n\n")
		ed.Access = model.EditorialAccessFull
	} else {
		ed.Access = model.EditorialAccessPartial
	}

	return ed
}

// ReadLocalEditorials reads manually downloaded editorial files (.txt, .md,
// .html) from a directory, sorted by filename. HTML files are reduced to
// text. A missing directory is not an error: the caller continues with
// scraped content only.
func ReadLocalEditorials(dir string) ([]model.Editorial, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read editorials dir: %w", err)
	}

	var editorials []model.Editorial
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".txt" && ext != ".md" && ext != ".html" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		text := string(data)
		if ext == ".html" {
			if doc, perr := parseHTML(text); perr == nil {
				text = nodeText(doc, "\n")
			}
		}

		editorials = append(editorials, model.Editorial{
			Filename: entry.Name(),
			FullText: text,
			Access:   model.EditorialAccessLocal,
		})
	}
	return editorials, nil
}
