// Package gateway wraps the generative AI backend: conversation replies,
// speech synthesis and funnel page generation.
package gateway

import (
	"context"

	"nexus-engine/internal/models"
)

// Gateway is the remote AI backend. Each call is a single request with no retry.
type Gateway interface {
	// GenerateReply returns the persona's answer to userText.
	GenerateReply(ctx context.Context, req ReplyRequest) (Text, error)
	// SynthesizeSpeech returns 16-bit little-endian mono PCM at 24 kHz, or
	// nil when the response carried no audio.
	SynthesizeSpeech(ctx context.Context, text string, voice models.VoiceName) ([]byte, error)
	// GenerateFunnelHTML returns a standalone landing page for the prompt.
	GenerateFunnelHTML(ctx context.Context, prompt string) (Text, error)
}

// ReplyRequest configures one simulated conversation turn.
type ReplyRequest struct {
	Model             string
	SystemInstruction string
	ObjectionHandling string
	UserText          string
}

// Instruction is the system instruction with objection handling guidance appended.
func (r ReplyRequest) Instruction() string {
	if r.ObjectionHandling == "" {
		return r.SystemInstruction
	}
	if r.SystemInstruction == "" {
		return r.ObjectionHandling
	}
	return r.SystemInstruction + "\n\nObjection handling: " + r.ObjectionHandling
}
