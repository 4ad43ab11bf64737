package captions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToSRT renders cues as SubRip text: 1-indexed blocks of
// "<index>\n<HH:MM:SS,mmm> --> <HH:MM:SS,mmm>\n<text>\n" separated by blank
// lines. The conversion is pure and deterministic.
func ToSRT(cues []Cue) string {
	blocks := make([]string, len(cues))
	for i, c := range cues {
		blocks[i] = fmt.Sprintf("%d\n%s --> %s\n%s\n",
			i+1, FormatSRTTimestamp(c.Start), FormatSRTTimestamp(c.End), c.Text)
	}
	return strings.Join(blocks, "\n")
}

// FormatSRTTimestamp renders seconds as zero-padded HH:MM:SS,mmm.
// Milliseconds are truncated from the float value, not rounded.
func FormatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := int(math.Mod(seconds, 60))
	millis := int(math.Mod(seconds, 1) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseSRTTimestamp converts an HH:MM:SS,mmm value back to seconds. A period
// is accepted in place of the comma.
func ParseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
