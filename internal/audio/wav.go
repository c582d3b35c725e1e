package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

const wavHeaderSize = 44

// WAV encodes the buffer as a 16-bit PCM RIFF/WAVE file, the format the
// dashboard's audio element plays without further decoding.
func (b *Buffer) WAV() []byte {
	channels := b.NumChannels()
	frames := b.Frames()
	dataSize := frames * channels * 2
	byteRate := b.SampleRate * channels * 2

	var out bytes.Buffer
	out.Grow(wavHeaderSize + dataSize)

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(36+dataSize))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(16))
	binary.Write(&out, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&out, binary.LittleEndian, uint16(channels))
	binary.Write(&out, binary.LittleEndian, uint32(b.SampleRate))
	binary.Write(&out, binary.LittleEndian, uint32(byteRate))
	binary.Write(&out, binary.LittleEndian, uint16(channels*2))
	binary.Write(&out, binary.LittleEndian, uint16(16))

	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(dataSize))

	sample := make([]byte, 2)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			binary.LittleEndian.PutUint16(sample, uint16(quantize(b.Channels[ch][i])))
			out.Write(sample)
		}
	}
	return out.Bytes()
}

func quantize(s float32) int16 {
	v := math.Round(float64(s) * 32768.0)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
