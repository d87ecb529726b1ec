package domain

import "context"

// CompletionClient generates a chat completion from a system prompt and a
// user message (infrastructure port for the text-generation provider).
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// AssistantReply is the chat assistant's answer. HTML carries a rendered
// event list when the provider lookup found shows; it is empty otherwise.
// swagger:model AssistantReply
type AssistantReply struct {
	Reply string `json:"reply"`
	HTML  string `json:"html"`
}

// AssistantService answers free-text concert questions: it parses the
// message into a search intent, looks events up with the ticket-search
// provider, and falls back to the completion client when nothing is found.
type AssistantService interface {
	Reply(ctx context.Context, userID, message string) (*AssistantReply, error)
}
