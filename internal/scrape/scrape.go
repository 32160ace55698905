// Package scrape collects article metadata from nature.com journal tables of
// contents, pulls public abstracts and editorials, and enriches the result
// with citation data from the Semantic Scholar graph API.
package scrape

import "strings"

const baseURL = "https://www.nature.com"

// journalPaths maps journal keys to nature.com path segments. Unknown keys
// fall through to "/"+key, which works for any Nature-family journal code.
var journalPaths = map[string]string{
	"nphoton":     "/nphoton",
	"ncomms":      "/ncomms",
	"nature":      "/nature",
	"lsa":         "/lsa",
	"nphys":       "/nphys",
	"nmat":        "/nmat",
	"nnano":       "/nnano",
	"nmeth":       "/nmeth",
	"nchem":       "/nchem",
	"natelectron": "/natelectron",
}

// journalNames maps journal keys to display names for report headers.
var journalNames = map[string]string{
	"nphoton": "Nature Photonics",
	"ncomms":  "Nature Communications",
	"nature":  "Nature",
}

// editorialTypes lists the article types treated as editorial content,
// lowercased for comparison.
var editorialTypes = map[string]bool{
	"editorial":          true,
	"comment":            true,
	"world view":         true,
	"correspondence":     true,
	"news feature":       true,
	"research highlight": true,
}

// IsEditorialType reports whether an article type counts as editorial
// content. Matching is case-insensitive.
func IsEditorialType(articleType string) bool {
	return editorialTypes[strings.ToLower(articleType)]
}
