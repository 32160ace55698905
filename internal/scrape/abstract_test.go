package scrape

import (
	"strings"
	"testing"
)

func TestExtractAbstract_AbsDiv(t *testing.T) {
	page := `<html><body>
	<div class="c-article-section" id="Abs1-section">
	  <div id="Abs1-content"><p>
	    Metasurfaces promise flat optics, yet broadband achromatic focusing
	    has remained out of reach. Here we demonstrate a dispersion-engineered
	    metalens operating across the visible spectrum.
	  </p></div>
	</div>
	</body></html>`

	abstract, ok := ExtractAbstract(page)
	if !ok {
		t.Fatal("Expected abstract to be found")
	}
	if !strings.HasPrefix(abstract, "Metasurfaces promise flat optics") {
		t.Errorf("Unexpected abstract: %q", abstract)
	}
}

func TestExtractAbstract_SectionFallback(t *testing.T) {
	page := `<html><body>
	<section data-title="Abstract">
	  <div class="c-article-section__content">
	    <p>We report a fibre laser with sub-femtosecond timing jitter.</p>
	  </div>
	</section>
	</body></html>`

	abstract, ok := ExtractAbstract(page)
	if !ok {
		t.Fatal("Expected abstract to be found")
	}
	if abstract != "We report a fibre laser with sub-femtosecond timing jitter." {
		t.Errorf("Unexpected abstract: %q", abstract)
	}
}

func TestExtractAbstract_MetaFallback(t *testing.T) {
	page := `<html><head>
	<meta name="description" content="Single-photon emitters in hexagonal boron nitride are electrically driven for the first time."/>
	</head><body><p>Paywalled body.</p></body></html>`

	abstract, ok := ExtractAbstract(page)
	if !ok {
		t.Fatal("Expected abstract to be found")
	}
	if !strings.Contains(abstract, "hexagonal boron nitride") {
		t.Errorf("Unexpected abstract: %q", abstract)
	}
}

func TestExtractAbstract_EmptyAbsFallsThrough(t *testing.T) {
	// An empty Abs1 container must not shadow a usable meta description.
	page := `<html><head>
	<meta name="description" content="Fallback description."/>
	</head><body><div id="Abs1-content"></div></body></html>`

	abstract, ok := ExtractAbstract(page)
	if !ok {
		t.Fatal("Expected abstract to be found")
	}
	if abstract != "Fallback description." {
		t.Errorf("Expected meta fallback, got %q", abstract)
	}
}

func TestExtractAbstract_NotFound(t *testing.T) {
	if abstract, ok := ExtractAbstract("<html><body><p>Nothing here.</p></body></html>"); ok {
		t.Errorf("Expected no abstract, got %q", abstract)
	}
}
