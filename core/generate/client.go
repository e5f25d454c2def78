package generate

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/saisubham-29/medrag/helper"
)

// GroqBaseURL is the OpenAI-compatible endpoint of the Groq API.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// NewOpenAIComplete builds a CompleteFunc on the go-openai client. With a
// non-empty baseURL any OpenAI-compatible backend (Groq included) can be
// targeted.
func NewOpenAIComplete(apiKey string, baseURL string, model string) (CompleteFunc, error) {
	if apiKey == "" {
		return nil, helper.NewError("completion client validation", fmt.Errorf("api key is empty"))
	}
	if model == "" {
		return nil, helper.NewError("completion client validation", fmt.Errorf("model is empty"))
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)

	return func(ctx context.Context, system string, messages []Message, temperature float32) (string, error) {
		chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
		if system != "" {
			chatMessages = append(chatMessages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			})
		}
		for _, msg := range messages {
			chatMessages = append(chatMessages, openai.ChatCompletionMessage{
				Role:    msg.Role,
				Content: msg.Content,
			})
		}

		resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Messages:    chatMessages,
			Temperature: temperature,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}, nil
}
