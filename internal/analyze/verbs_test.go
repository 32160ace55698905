package analyze

import "testing"

func TestExtractVerbs_HereWePivot(t *testing.T) {
	verbs := ExtractVerbs("Here we demonstrate a soliton microcomb.")

	want := []string{"demonstrate"}
	if !equalStrings(verbs, want) {
		t.Errorf("Expected %v, got %v", want, verbs)
	}
}

func TestExtractVerbs_BareWe(t *testing.T) {
	verbs := ExtractVerbs("We show that the cavity locks itself.")

	want := []string{"show"}
	if !equalStrings(verbs, want) {
		t.Errorf("Expected %v, got %v", want, verbs)
	}
}

func TestExtractVerbs_CapitalWeAfterHereNotCounted(t *testing.T) {
	// "Here We" satisfies neither the pivot pattern (lowercase we) nor the
	// bare-We pattern, which skips matches preceded by "Here ".
	verbs := ExtractVerbs("Here We demonstrate a soliton microcomb.")

	if len(verbs) != 0 {
		t.Errorf("Expected no verbs, got %v", verbs)
	}
}

func TestExtractVerbs_Normalization(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"We demonstrated coherent control.", "demonstrate"},
		{"Our approach enables single-shot readout.", "enable"},
		{"This work establishes a calibration route.", "establish"},
		{"We showed the effect persists.", "show"},
	}

	for _, tt := range tests {
		verbs := ExtractVerbs(tt.text)
		if len(verbs) != 1 || verbs[0] != tt.want {
			t.Errorf("Expected [%s] for %q, got %v", tt.want, tt.text, verbs)
		}
	}
}

func TestExtractVerbs_GerundImpactClause(t *testing.T) {
	verbs := ExtractVerbs("The noise floor drops, thereby enabling weak-signal detection.")

	want := []string{"enable"}
	if !equalStrings(verbs, want) {
		t.Errorf("Expected %v, got %v", want, verbs)
	}
}

func TestExtractVerbs_StopVerbsFiltered(t *testing.T) {
	tests := []struct {
		desc string
		text string
	}{
		{"auxiliary verb", "We are measuring the field."},
		{"modal verb", "We can resolve single photons."},
		{"short verb", "We do this at room temperature."},
		{"adverb catch", "We recently found a workaround."},
	}

	for _, tt := range tests {
		if verbs := ExtractVerbs(tt.text); len(verbs) != 0 {
			t.Errorf("%s: expected no verbs for %q, got %v", tt.desc, tt.text, verbs)
		}
	}
}

func TestExtractVerbs_PatternOverlapCountsTwice(t *testing.T) {
	// The comma-gerund clause is caught by both the bare-We pattern run on
	// "We ..." and the gerund pattern, so one occurrence can rank twice.
	verbs := ExtractVerbs("We boost the gain, unlocking new regimes.")

	want := []string{"boost", "unlock"}
	if !equalStrings(verbs, want) {
		t.Errorf("Expected %v, got %v", want, verbs)
	}
}

func TestHereWeVerbs(t *testing.T) {
	text := "Here we demonstrate a frequency comb. Later, here we show its stability."

	verbs := HereWeVerbs(text)

	want := []string{"demonstrate", "show"}
	if !equalStrings(verbs, want) {
		t.Errorf("Expected %v, got %v", want, verbs)
	}
}

func TestHereWeVerbs_NoPivot(t *testing.T) {
	if verbs := HereWeVerbs("We demonstrate a frequency comb."); len(verbs) != 0 {
		t.Errorf("Expected no pivot verbs, got %v", verbs)
	}
}
