package analyze

import (
	"regexp"

	"github.com/ndrozd/exordium/internal/model"
)

// domainShiftPatterns mark the transition from fundamental results to an
// applied or clinical demonstration.
var domainShiftPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)as a (?:medical|clinical|practical|industrial) (?:application|demonstration|validation)`),
	regexp.MustCompile(`(?i)for (?:clinical|practical|industrial|medical) (?:use|deployment|validation|translation)`),
	regexp.MustCompile(`(?i)in (?:clinical|in vivo|ex vivo|human|patient) (?:settings?|samples?|tests?|studies|trials?)`),
	regexp.MustCompile(`(?i)towards? (?:clinical|practical|medical|real-world)`),
	regexp.MustCompile(`(?i)we (?:further|also) (?:demonstrate|show|apply|validate)`),
}

// DetectDomainShifts finds domain-shift markers in abstract text. Markers are
// reported in pattern order, then by position, with the byte offset and the
// pattern that fired.
func DetectDomainShifts(text string) []model.ShiftMarker {
	var markers []model.ShiftMarker
	for _, re := range domainShiftPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			markers = append(markers, model.ShiftMarker{
				Match:    text[loc[0]:loc[1]],
				Position: loc[0],
				Pattern:  re.String(),
			})
		}
	}
	return markers
}
