package captions

import (
	"fmt"
	"strings"
)

// Validation is the result of an encoding check over a cue list.
type Validation struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// Validate flags cues containing the Unicode replacement character, empty
// text, or inverted bounds. Issue indices are 1-based to match on-screen cue
// numbering.
func Validate(cues []Cue) Validation {
	issues := []string{}
	for i, c := range cues {
		n := i + 1
		if strings.ContainsRune(c.Text, '�') {
			issues = append(issues, fmt.Sprintf("caption #%d: contains replacement character (�), encoding issue", n))
		}
		if strings.TrimSpace(c.Text) == "" {
			issues = append(issues, fmt.Sprintf("caption #%d: empty text", n))
		}
		if c.Start >= c.End {
			issues = append(issues, fmt.Sprintf("caption #%d: invalid timestamps (start >= end)", n))
		}
	}
	return Validation{Valid: len(issues) == 0, Issues: issues}
}
