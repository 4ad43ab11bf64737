package captions

import (
	"math"
	"strings"
	"unicode/utf8"
)

// RawChunk is a provider-emitted fragment before segmentation. Nil bounds are
// provider failures to supply a timestamp and are defaulted during
// segmentation.
type RawChunk struct {
	Text  string
	Start *float64
	End   *float64
}

// Merge thresholds. Hand-tuned in the source system; kept verbatim because
// behavior parity matters more than optimality.
const (
	// maxMergeDuration is the span under which a cue is considered too short
	// to stand alone.
	maxMergeDuration = 1.5
	// maxMergeGap is the silence between neighbors under which they read as
	// one utterance.
	maxMergeGap = 0.5
	// maxMergedTextLen caps the combined text, in characters, so merged
	// cues stay readable on screen. Counted in runes: a Devanagari cue is
	// three bytes per character and must not trip the cap early.
	maxMergedTextLen = 150

	// defaultSpanSeconds is assumed whenever a provider cannot supply an end
	// timestamp. A hosted response with no per-segment timing therefore
	// collapses to 5-second spans, which for a long video can mean one giant
	// cue; that is a known limitation of the source system, kept as-is.
	defaultSpanSeconds = 5.0

	// placeholderText is used when a provider returns neither chunks nor
	// whole-utterance text.
	placeholderText = "No speech detected"
)

// Segment normalizes raw chunks into merged, display-ready cues:
// empty chunks are dropped, missing bounds defaulted, bounds rounded to
// centiseconds, and short closely-spaced neighbors merged. When the provider
// produced no usable chunks at all, a single placeholder cue spanning
// [0, 5] is synthesized from fullText.
func Segment(chunks []RawChunk, fullText string, source Source) []Cue {
	cues := make([]Cue, 0, len(chunks))
	for _, ch := range chunks {
		text := strings.TrimSpace(ch.Text)
		if text == "" {
			continue
		}
		start := 0.0
		if ch.Start != nil {
			start = *ch.Start
		}
		end := start + defaultSpanSeconds
		if ch.End != nil {
			end = *ch.End
		}
		cues = append(cues, Cue{
			Start:    round2(start),
			End:      round2(end),
			Text:     text,
			Source:   source,
			Language: LanguageHinglish,
		})
	}

	if len(cues) == 0 {
		text := strings.TrimSpace(fullText)
		if text == "" {
			text = placeholderText
		}
		return []Cue{{
			Start:    0,
			End:      defaultSpanSeconds,
			Text:     text,
			Source:   source,
			Language: LanguageHinglish,
		}}
	}

	return Merge(cues)
}

// Merge runs a single left-to-right scan combining short, closely-spaced
// cues. It is idempotent: every emitted cue was flushed because the predicate
// failed against its successor, so a second pass finds nothing to do.
func Merge(cues []Cue) []Cue {
	if len(cues) == 0 {
		return cues
	}

	merged := make([]Cue, 0, len(cues))
	current := cues[0]

	for _, next := range cues[1:] {
		duration := current.End - current.Start
		gap := next.Start - current.End

		if duration < maxMergeDuration &&
			gap < maxMergeGap &&
			utf8.RuneCountInString(current.Text)+utf8.RuneCountInString(next.Text) < maxMergedTextLen {
			current.Text += " " + next.Text
			current.End = next.End
			continue
		}

		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
