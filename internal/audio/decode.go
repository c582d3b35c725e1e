// Package audio turns raw synthesis output into playable buffers and hands
// them to the dashboard's audio output.
package audio

import (
	"encoding/binary"
	"errors"
	"time"
)

// SampleRate is the rate of the speech model's PCM output.
const SampleRate = 24000

var ErrInvalidChannels = errors.New("audio: channel count must be at least 1")

// Buffer is decoded multi-channel audio, one float slice per channel.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Frames is the per-channel sample count.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// DecodePCM16 reads interleaved signed 16-bit little-endian samples.
// A trailing partial frame is dropped; empty input gives a zero-frame buffer.
func DecodePCM16(data []byte, sampleRate, channels int) (*Buffer, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	frames := len(data) / 2 / channels

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for ch := range buf.Channels {
		buf.Channels[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 2
			v := int16(binary.LittleEndian.Uint16(data[off : off+2]))
			buf.Channels[ch][i] = float32(v) / 32768.0
		}
	}
	return buf, nil
}
