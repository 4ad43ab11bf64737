package captions

import "fmt"

// Stats classifies cues by script: Devanagari-only, Latin-only, or mixed.
type Stats struct {
	Total       int    `json:"total"`
	HindiOnly   int    `json:"hindiOnly"`
	EnglishOnly int    `json:"englishOnly"`
	Hinglish    int    `json:"hinglish"`
	Percentage  Shares `json:"percentage"`
}

type Shares struct {
	HindiOnly   string `json:"hindiOnly"`
	EnglishOnly string `json:"englishOnly"`
	Hinglish    string `json:"hinglish"`
}

// ContainsDevanagari reports whether text carries any code point in the
// Devanagari block (U+0900 to U+097F).
func ContainsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

func containsLatin(text string) bool {
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// ComputeStats reports script composition counts and percentages for a cue
// list.
func ComputeStats(cues []Cue) Stats {
	s := Stats{Total: len(cues)}
	for _, c := range cues {
		hasHindi := ContainsDevanagari(c.Text)
		hasEnglish := containsLatin(c.Text)
		switch {
		case hasHindi && hasEnglish:
			s.Hinglish++
		case hasHindi:
			s.HindiOnly++
		case hasEnglish:
			s.EnglishOnly++
		}
	}
	s.Percentage = Shares{
		HindiOnly:   share(s.HindiOnly, s.Total),
		EnglishOnly: share(s.EnglishOnly, s.Total),
		Hinglish:    share(s.Hinglish, s.Total),
	}
	return s
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
