// Package genai wraps the external generative text service and the
// deterministic parsing of its free-text replies.
package genai

import "context"

// MaxGardenerComments is the per-post cap on AI gardener comments.
const MaxGardenerComments = 3

// Generator is the capability interface for the upstream completion service.
// Implementations take a prompt (optionally with an image) and return the raw
// generated text.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Draft is the parsed result of a draft generation call.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// Summary is the parsed result of a discussion summarization call.
type Summary struct {
	KeyIdeas         []string `json:"key_ideas"`
	CommonThoughts   []string `json:"common_thoughts"`
	DiscussionPoints []string `json:"discussion_points"`
}
