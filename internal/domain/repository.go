package domain

import "context"

// GenerationConfig holds the fixed sampling parameters of a model request
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// InlineData is an inline binary part, base64 encoded
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// RequestPart is either a text part or an inline data part
type RequestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// RequestContent is one turn of a model request
type RequestContent struct {
	Parts []RequestPart `json:"parts"`
}

// RequestPayload is the JSON body sent to the model endpoint
type RequestPayload struct {
	Contents         []RequestContent `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// ModelClient defines the interface for the external generative model endpoint.
// Send returns the raw model text or fails with ErrAuth, ErrTransport or ErrUpstream.
type ModelClient interface {
	Send(ctx context.Context, payload RequestPayload) (string, error)
}
