package openai

import (
	"time"

	"github.com/yc365/storefront/internal/ai"
)

// Wire types for POST /v1/chat/completions. Only the fields the storefront
// reads or sends are declared.

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	User        string        `json:"user,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   ChatCompletionUsage    `json:"usage"`
}

type ChatCompletionChoice struct {
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type ChatCompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorBody is the error envelope shared by OpenAI and most compatible
// servers.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r *ChatCompletionRequest) setMessages(systemPrompt, prompt string) {
	r.Messages = r.Messages[:0]
	if systemPrompt != "" {
		r.Messages = append(r.Messages, ChatMessage{Role: "system", Content: systemPrompt})
	}
	r.Messages = append(r.Messages, ChatMessage{Role: "user", Content: prompt})
}

func (r *ChatCompletionResponse) toAIResponse(requestID string) *ai.CompletionResponse {
	response := &ai.CompletionResponse{
		RequestID: requestID,
		Model:     r.Model,
		CreatedAt: time.Unix(r.Created, 0),
		Usage: &ai.TokenUsage{
			PromptTokens:     r.Usage.PromptTokens,
			CompletionTokens: r.Usage.CompletionTokens,
			TotalTokens:      r.Usage.TotalTokens,
		},
	}

	if len(r.Choices) > 0 {
		choice := r.Choices[0]
		response.Content = choice.Message.Content
		response.FinishReason = choice.FinishReason
	}

	return response
}
