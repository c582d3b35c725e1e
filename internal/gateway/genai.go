package gateway

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"nexus-engine/internal/models"
)

const (
	DefaultFunnelModel = "gemini-3-pro-preview"
	DefaultTTSModel    = "gemini-2.5-flash-preview-tts"
)

// GenAIConfig configures the Gemini backed gateway.
type GenAIConfig struct {
	APIKey      string
	BaseURL     string
	FunnelModel string
	TTSModel    string
}

// GenAI implements Gateway over google.golang.org/genai.
type GenAI struct {
	client      *genai.Client
	funnelModel string
	ttsModel    string
}

// NewGenAI creates the Gemini client. The API key is the ambient credential.
func NewGenAI(ctx context.Context, cfg GenAIConfig) (*GenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if cfg.FunnelModel == "" {
		cfg.FunnelModel = DefaultFunnelModel
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = DefaultTTSModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAI{
		client:      client,
		funnelModel: cfg.FunnelModel,
		ttsModel:    cfg.TTSModel,
	}, nil
}

func (g *GenAI) GenerateReply(ctx context.Context, req ReplyRequest) (Text, error) {
	var config *genai.GenerateContentConfig
	if instruction := req.Instruction(); instruction != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserText), config)
	if err != nil {
		return None(), fmt.Errorf("generate reply: %w", err)
	}
	return Some(resp.Text()), nil
}

func (g *GenAI) SynthesizeSpeech(ctx context.Context, text string, voice models.VoiceName) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: string(voice)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.ttsModel, genai.Text(SpeechPrompt(text)), config)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return firstInlineData(resp), nil
}

func (g *GenAI) GenerateFunnelHTML(ctx context.Context, prompt string) (Text, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.funnelModel, genai.Text(prompt), nil)
	if err != nil {
		return None(), fmt.Errorf("generate funnel: %w", err)
	}
	return Some(resp.Text()), nil
}

// firstInlineData digs out candidates[0].content.parts[0].inlineData.data.
func firstInlineData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil
	}
	part := content.Parts[0]
	if part == nil || part.InlineData == nil {
		return nil
	}
	return part.InlineData.Data
}
