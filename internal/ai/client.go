package ai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"interviewsim/internal/errors"
)

// Client wraps the OpenAI chat completion API behind the one operation the
// application needs: prompt in, text out.
type Client struct {
	client *openai.Client
}

// NewClient builds a client for the given API key. baseURL overrides the API
// endpoint when non-empty, which lets tests point the client at a stub server.
func NewClient(apiKey, baseURL string) Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return Client{
		client: openai.NewClientWithConfig(config),
	}
}

// Complete performs a single chat completion round-trip. There are no retries;
// callers decide how to degrade on failure.
func (c Client) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       openai.GPT3Dot5Turbo,
			Temperature: temperature,
			MaxTokens:   maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
