package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-engine/internal/models"
)

func TestResolveFallbacks(t *testing.T) {
	got, ok := Resolve(OpReply, None())
	assert.True(t, ok)
	assert.Equal(t, "I'll have to check on that.", got)

	got, ok = Resolve(OpFunnel, Some(""))
	assert.True(t, ok)
	assert.Equal(t, FunnelFallback, got)

	got, ok = Resolve(OpFunnel, Some("<html>ok</html>"))
	assert.True(t, ok)
	assert.Equal(t, "<html>ok</html>", got)

	_, ok = Resolve(OpSpeech, None())
	assert.False(t, ok)
}

func TestReplyRequestInstruction(t *testing.T) {
	r := ReplyRequest{SystemInstruction: "Be helpful."}
	assert.Equal(t, "Be helpful.", r.Instruction())

	r.ObjectionHandling = "Offer rakeback."
	assert.Equal(t, "Be helpful.\n\nObjection handling: Offer rakeback.", r.Instruction())

	assert.Equal(t, "Offer rakeback.", ReplyRequest{ObjectionHandling: "Offer rakeback."}.Instruction())
}

func TestFunnelPromptMentionsNiche(t *testing.T) {
	p := FunnelPrompt("Test Niche")
	assert.Contains(t, p, "landing page for: Test Niche.")
	assert.Contains(t, p, "Name and Phone")
}

// fakeGemini answers generateContent calls with canned bodies keyed by model.
type fakeGemini struct {
	mu       sync.Mutex
	bodies   map[string]string
	requests []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, string(raw))
	f.mu.Unlock()

	for model, body := range f.bodies {
		if strings.Contains(r.URL.Path, "models/"+model+":generateContent") {
			if body == "" {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
			return
		}
	}
	http.NotFound(w, r)
}

func (f *fakeGemini) lastRequest() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return ""
	}
	return f.requests[len(f.requests)-1]
}

func newFakeClient(t *testing.T, bodies map[string]string) (*GenAI, *fakeGemini) {
	t.Helper()
	fake := &fakeGemini{bodies: bodies}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	g, err := NewGenAI(context.Background(), GenAIConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/",
		FunnelModel: "funnel-model",
		TTSModel:    "tts-model",
	})
	require.NoError(t, err)
	return g, fake
}

func TestNewGenAIRequiresKey(t *testing.T) {
	_, err := NewGenAI(context.Background(), GenAIConfig{})
	assert.Error(t, err)
}

func TestGenAIGenerateReply(t *testing.T) {
	g, fake := newFakeClient(t, map[string]string{
		"chat-model": `{"candidates":[{"content":{"role":"model","parts":[{"text":"Happy to help."}]}}]}`,
	})

	got, err := g.GenerateReply(context.Background(), ReplyRequest{
		Model:             "chat-model",
		SystemInstruction: "You are a concierge.",
		UserText:          "Who is this?",
	})
	require.NoError(t, err)
	assert.Equal(t, Some("Happy to help."), got)
	assert.Contains(t, fake.lastRequest(), "Who is this?")
	assert.Contains(t, fake.lastRequest(), "You are a concierge.")
}

func TestGenAIGenerateReplyEmptyCandidates(t *testing.T) {
	g, _ := newFakeClient(t, map[string]string{"chat-model": `{"candidates":[]}`})

	got, err := g.GenerateReply(context.Background(), ReplyRequest{Model: "chat-model", UserText: "hi"})
	require.NoError(t, err)
	assert.False(t, got.Present)
}

func TestGenAISynthesizeSpeech(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0}
	g, fake := newFakeClient(t, map[string]string{
		"tts-model": fmt.Sprintf(`{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"audio/L16;rate=24000","data":%q}}]}}]}`,
			base64.StdEncoding.EncodeToString(pcm)),
	})

	got, err := g.SynthesizeSpeech(context.Background(), "hello there", models.VoiceZephyr)
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
	assert.Contains(t, fake.lastRequest(), "Respond naturally: hello there")
	assert.Contains(t, fake.lastRequest(), "Zephyr")
	assert.Contains(t, fake.lastRequest(), "AUDIO")
}

func TestGenAISynthesizeSpeechWithoutAudio(t *testing.T) {
	g, _ := newFakeClient(t, map[string]string{
		"tts-model": `{"candidates":[{"content":{"role":"model","parts":[{"text":"no audio"}]}}]}`,
	})

	got, err := g.SynthesizeSpeech(context.Background(), "hello", models.VoiceKore)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenAIGenerateFunnelFailure(t *testing.T) {
	g, _ := newFakeClient(t, map[string]string{"funnel-model": ""})

	_, err := g.GenerateFunnelHTML(context.Background(), FunnelPrompt("x"))
	assert.Error(t, err)
}

type stubGateway struct {
	text Text
	pcm  []byte
	err  error
}

func (s stubGateway) GenerateReply(context.Context, ReplyRequest) (Text, error) { return s.text, s.err }
func (s stubGateway) SynthesizeSpeech(context.Context, string, models.VoiceName) ([]byte, error) {
	return s.pcm, s.err
}
func (s stubGateway) GenerateFunnelHTML(context.Context, string) (Text, error) { return s.text, s.err }

func TestInstrumentedCountsOutcomes(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	_, _ = Instrument(stubGateway{text: Some("hi")}, m).GenerateReply(ctx, ReplyRequest{})
	_, _ = Instrument(stubGateway{text: None()}, m).GenerateFunnelHTML(ctx, "p")
	_, _ = Instrument(stubGateway{err: errors.New("down")}, m).SynthesizeSpeech(ctx, "t", models.VoicePuck)
	_, _ = Instrument(stubGateway{}, m).SynthesizeSpeech(ctx, "t", models.VoicePuck)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(string(OpReply), OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(string(OpFunnel), OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(string(OpSpeech), OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues(string(OpSpeech), OutcomeEmpty)))
}
