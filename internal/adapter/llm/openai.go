// Package llm adapts chat-completion APIs to the Synthesizer port.
package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"lexrag/internal/domain"
)

const answerInstructions = `You are a legal assistant specializing in Indonesian laws. You need to provide accurate information based on the given documents.

%s

Please answer the following question based ONLY on the information provided in the documents above. If the documents don't contain enough information to answer the question, say so - DO NOT make up information.

Question: %s

Answer:`

// OpenAISynthesizer generates answers through an OpenAI-compatible
// chat-completions endpoint.
type OpenAISynthesizer struct {
	client openai.Client
	model  string
}

// NewOpenAISynthesizer reads the API key from the named environment
// variable. baseURL overrides the endpoint for compatible providers.
func NewOpenAISynthesizer(apiKeyEnv, model, baseURL string) (*OpenAISynthesizer, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", apiKeyEnv)
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(3),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAISynthesizer{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Synthesize prompts the model with the query and its retrieved passages.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, query string, passages []domain.SearchResult) (string, error) {
	prompt := fmt.Sprintf(answerInstructions, formatContext(passages), query)

	out, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(s.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return out.Choices[0].Message.Content, nil
}

// ModelName returns the configured model identifier.
func (s *OpenAISynthesizer) ModelName() string { return s.model }

// formatContext lays the passages out one per block with their source file
// and page range, so the model can cite them.
func formatContext(passages []domain.SearchResult) string {
	var b strings.Builder
	b.WriteString("Here are some relevant documents to help answer the question:\n\n")
	for i, p := range passages {
		fmt.Fprintf(&b, "Document %d (Source: %s, Pages: %d-%d):\n",
			i+1, filepath.Base(p.Source), p.Metadata.PageStart, p.Metadata.PageEnd)
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
