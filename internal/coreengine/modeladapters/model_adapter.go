package modeladapters

import "context"

// PromptPart is one element of an ordered multimodal prompt. Exactly one of
// Text or ImageBase64 is set.
type PromptPart struct {
	Text        string
	ImageBase64 string // base64-encoded JPEG, sent as a data URI
}

// GenerativeModelAdapter defines the interface for hosted multimodal
// generation services. Generate returns the model's raw text output.
// A transport error or non-success status is reported as an error
// ("generation failed"); recovering structure from a successful but
// malformed response is the extractor's job, not the adapter's.
// Adapters do not retry; retry policy belongs to the caller.
type GenerativeModelAdapter interface {
	Generate(ctx context.Context, systemPrompt string, parts []PromptPart) (rawText string, err error)
}
