// Package render resolves which caption is visible at a presentation time
// and, for the karaoke style, how far the highlight has progressed through
// its words. Everything here is a pure function of its inputs so the
// rendering collaborator can call it per frame without synchronization.
package render

import (
	"strings"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
)

type Style string

const (
	StyleBottom  Style = "bottom"
	StyleTop     Style = "top"
	StyleKaraoke Style = "karaoke"
)

// WordState is a word's highlight phase within the active karaoke cue.
type WordState string

const (
	WordSung     WordState = "sung"
	WordSinging  WordState = "singing"
	WordUpcoming WordState = "upcoming"
)

type Word struct {
	Text  string    `json:"text"`
	State WordState `json:"state"`
}

// Frame is the resolved caption state at one presentation time. Words is
// populated for the karaoke style only.
type Frame struct {
	ActiveCue *captions.Cue `json:"activeCue"`
	Words     []Word        `json:"words,omitempty"`
}

// Resolve returns the caption state at time t. The active cue is the first
// cue with start <= t <= end; cues are non-overlapping after merging, and if
// malformed input yields two candidates the earliest-starting match wins.
func Resolve(t float64, cues []captions.Cue, style Style) Frame {
	for i := range cues {
		if t >= cues[i].Start && t <= cues[i].End {
			active := cues[i]
			f := Frame{ActiveCue: &active}
			if style == StyleKaraoke {
				f.Words = karaokeWords(t, active)
			}
			return f
		}
	}
	return Frame{}
}

// ResolveAtFrame resolves for a frame index at the given frame rate.
func ResolveAtFrame(frameIndex int, fps float64, cues []captions.Cue, style Style) Frame {
	if fps <= 0 {
		return Frame{}
	}
	return Resolve(float64(frameIndex)/fps, cues, style)
}

// karaokeWords splits the cue text on whitespace and marks each word as sung,
// singing or upcoming from the cue-relative progress. Progress is clamped to
// [0, 1) so the final word stays highlighted through the cue's last instant.
func karaokeWords(t float64, cue captions.Cue) []Word {
	words := strings.Fields(cue.Text)
	if len(words) == 0 {
		return nil
	}

	duration := cue.End - cue.Start
	progress := 0.0
	if duration > 0 {
		progress = (t - cue.Start) / duration
	}
	if progress < 0 {
		progress = 0
	}

	active := int(progress * float64(len(words)))
	if active >= len(words) {
		active = len(words) - 1
	}

	out := make([]Word, len(words))
	for i, w := range words {
		state := WordUpcoming
		switch {
		case i < active:
			state = WordSung
		case i == active:
			state = WordSinging
		}
		out[i] = Word{Text: w, State: state}
	}
	return out
}
