package gateway

import "fmt"

// SpeechPrompt asks the TTS model to voice text naturally.
func SpeechPrompt(text string) string {
	return "Respond naturally: " + text
}

// FunnelPrompt composes the landing page request for a niche.
func FunnelPrompt(niche string) string {
	return fmt.Sprintf(`Generate a high-converting Stake Casino affiliate landing page for: %s.
            Optimize for AI search (GPT magnetism) by using structured data and clear semantic definitions.
            Include a form with Name and Phone.
            Use dark UI theme with #00ffff accents. Output valid standalone HTML/CSS.`, niche)
}
