// Package captions turns raw timestamped speech chunks into display-ready
// caption cues and provides the cue utilities consumed by the API layer:
// script statistics, encoding validation and SubRip export.
package captions

// Source tags which backend produced a cue.
type Source string

const (
	SourceHosted Source = "hosted"
	SourceLocal  Source = "local"
	SourceDemo   Source = "demo"
)

// LanguageHinglish is the language tag for the mixed Hindi/English domain
// this service targets.
const LanguageHinglish = "hinglish"

// Cue is a single timed caption entry. Start and End are seconds with
// centisecond precision; Text is trimmed and non-empty.
type Cue struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Text     string  `json:"text"`
	Source   Source  `json:"source"`
	Language string  `json:"language"`
}

// Duration returns the cue's display span in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}
