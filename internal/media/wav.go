package media

import (
	"encoding/binary"
	"fmt"
	"os"
)

// ReadWaveform decodes a PCM16 WAV file into float32 samples normalized to
// [-1.0, 1.0]. Only the format the extractor produces is accepted.
func ReadWaveform(path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read waveform: %w", err)
	}
	data, err := pcmData(raw)
	if err != nil {
		return nil, fmt.Errorf("decode waveform %s: %w", path, err)
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples, nil
}

// pcmData walks the RIFF chunks and returns the raw PCM16 payload.
func pcmData(raw []byte) ([]byte, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		sawFmt bool
		data   []byte
	)
	off := 12
	for off+8 <= len(raw) {
		id := string(raw[off : off+4])
		size := int(binary.LittleEndian.Uint32(raw[off+4 : off+8]))
		body := raw[off+8:]
		if size > len(body) {
			size = len(body)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("truncated fmt chunk")
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			channels := binary.LittleEndian.Uint16(body[2:4])
			rate := binary.LittleEndian.Uint32(body[4:8])
			bits := binary.LittleEndian.Uint16(body[14:16])
			if format != 1 || bits != 16 {
				return nil, fmt.Errorf("unsupported encoding (format=%d bits=%d), want PCM16", format, bits)
			}
			if channels != Channels || rate != SampleRateHz {
				return nil, fmt.Errorf("unexpected layout (channels=%d rate=%d), want mono %d Hz", channels, rate, SampleRateHz)
			}
			sawFmt = true
		case "data":
			data = body[:size]
		}
		// chunks are word-aligned
		off += 8 + size + (size & 1)
	}

	if !sawFmt {
		return nil, fmt.Errorf("missing fmt chunk")
	}
	if data == nil {
		return nil, fmt.Errorf("missing data chunk")
	}
	return data, nil
}
