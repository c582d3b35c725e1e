package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Clip is a decoded buffer ready for the output device.
type Clip struct {
	SampleRate int
	Channels   int
	Duration   time.Duration
	WAV        []byte
}

// Sink is the host audio output. Implementations must not block on slow listeners.
type Sink interface {
	PlayClip(clip Clip)
}

// Context is the process-wide output context. There is exactly one per Player,
// always running at the speech model's 24 kHz.
type Context struct {
	SampleRate int
	CreatedAt  time.Time

	plays atomic.Int64
}

// Plays reports how many clips went through this context.
func (c *Context) Plays() int64 { return c.plays.Load() }

// Player schedules decoded speech for immediate playback. Calls may overlap;
// there is no queueing or mixing.
type Player struct {
	sink   Sink
	logger *zap.Logger

	once sync.Once
	ctx  *Context
}

func NewPlayer(sink Sink, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{sink: sink, logger: logger}
}

// Context returns the output context, creating it on first use.
func (p *Player) Context() *Context {
	p.once.Do(func() {
		p.ctx = &Context{SampleRate: SampleRate, CreatedAt: time.Now()}
		p.logger.Debug("audio context created", zap.Int("sample_rate", SampleRate))
	})
	return p.ctx
}

// Play hands the buffer to the sink.
func (p *Player) Play(buf *Buffer) {
	ctx := p.Context()
	ctx.plays.Add(1)
	if p.sink == nil {
		return
	}
	p.sink.PlayClip(Clip{
		SampleRate: buf.SampleRate,
		Channels:   buf.NumChannels(),
		Duration:   buf.Duration(),
		WAV:        buf.WAV(),
	})
}

// PlayPCM decodes mono 16-bit PCM as produced by the speech model and plays it.
func (p *Player) PlayPCM(data []byte) error {
	buf, err := DecodePCM16(data, SampleRate, 1)
	if err != nil {
		return fmt.Errorf("decode speech: %w", err)
	}
	if buf.Frames() == 0 {
		p.logger.Debug("skipping empty speech buffer")
		return nil
	}
	p.Play(buf)
	return nil
}
