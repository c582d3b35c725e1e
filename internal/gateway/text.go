package gateway

// Text is an optional text field from a response.
type Text struct {
	Value   string
	Present bool
}

func Some(s string) Text {
	return Text{Value: s, Present: s != ""}
}

func None() Text { return Text{} }

// Operation names a gateway call for fallback mapping, logs and metrics.
type Operation string

const (
	OpReply  Operation = "generate_reply"
	OpSpeech Operation = "synthesize_speech"
	OpFunnel Operation = "generate_funnel"
)

const (
	ReplyFallback  = "I'll have to check on that."
	FunnelFallback = "<html><body>Error generating funnel</body></html>"
)

var fallbacks = map[Operation]string{
	OpReply:  ReplyFallback,
	OpFunnel: FunnelFallback,
}

// Resolve maps an optional result to guaranteed text using the operation's
// fallback. ok is false only for operations without a fallback (speech).
func Resolve(op Operation, t Text) (string, bool) {
	if t.Present {
		return t.Value, true
	}
	fb, ok := fallbacks[op]
	return fb, ok
}
