package model

// Editorial access levels.
const (
	EditorialAccessFull    = "full"
	EditorialAccessPartial = "partial"
	EditorialAccessLocal   = "local"
)

// Editorial is one editorial piece, either scraped from a public article page
// or read from a locally saved file. Scraped entries carry title/DOI/URL;
// local entries carry the source filename instead.
type Editorial struct {
	Title          string `yaml:"title,omitempty"`
	DOI            string `yaml:"doi,omitempty"`
	URL            string `yaml:"url,omitempty"`
	FirstParagraph string `yaml:"first_paragraph,omitempty"`
	FullText       string `yaml:"full_text,omitempty"`
	Access         string `yaml:"access"`
	Filename       string `yaml:"filename,omitempty"`
}

// Text returns the fullest text available for the editorial.
func (e Editorial) Text() string {
	if e.FullText != "" {
		return e.FullText
	}
	return e.FirstParagraph
}

// DisplayTitle returns the title, falling back to the source filename.
func (e Editorial) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Filename != "" {
		return e.Filename
	}
	return "Unknown"
}
