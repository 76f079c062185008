// Package ai wraps the hosted model APIs used for categorization, insights,
// chat and receipt parsing. Output quality is the provider's problem, this
// package only shapes requests and parses responses.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hemanthscode/fintrack/internal/types"
	openai "github.com/sashabaranov/go-openai"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("AI features are disabled, set OPENAI_API_KEY to enable them")

// Client talks to the model API.
type Client struct {
	client *openai.Client
	model  string
}

// NewFromEnv returns a client configured from OPENAI_API_KEY, OPENAI_BASE_URL
// and OPENAI_MODEL. The client is nil-safe: a client without an API key
// returns ErrDisabled from every call.
func NewFromEnv() *Client {
	apiKey, ok := os.LookupEnv("OPENAI_API_KEY")
	if !ok {
		return &Client{}
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL, ok := os.LookupEnv("OPENAI_BASE_URL"); ok {
		config.BaseURL = baseURL
	}

	model := openai.GPT4oMini
	if m, ok := os.LookupEnv("OPENAI_MODEL"); ok {
		model = m
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Categorize returns the category for a transaction description.
func (c *Client) Categorize(ctx context.Context, description string, transactionType types.TransactionType) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	prompt := fmt.Sprintf(
		"Assign the following %s transaction to exactly one of these categories: %s.\nTransaction: %q\nAnswer with the category only.",
		transactionType, strings.Join(types.CategoriesFor(transactionType), ", "), description,
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("categorization request failed: %w", err)
	}

	category := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	if !types.CategoryValid(category, transactionType) {
		return "other", nil
	}

	return category, nil
}

// Insights generates a short commentary over aggregated spending data.
func (c *Client) Insights(ctx context.Context, summary string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a personal finance assistant. Summarize notable patterns and give at most three concrete suggestions. Be brief.",
			},
			{Role: openai.ChatMessageRoleUser, Content: summary},
		},
	})
	if err != nil {
		return "", fmt.Errorf("insights request failed: %w", err)
	}

	return resp.Choices[0].Message.Content, nil
}

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"How much did I spend on food this month?"`
}

// Chat answers a user question given the conversation so far and a data
// context assembled by the caller.
func (c *Client) Chat(ctx context.Context, history []Message, dataContext string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(
				"You are the FinTrack assistant. Current time: %s.\nAnswer questions about the user's finances using only this data:\n%s",
				time.Now().In(time.UTC).Format(time.RFC3339), dataContext,
			),
		},
	}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	return resp.Choices[0].Message.Content, nil
}

// Receipt is the structured result of parsing a receipt image.
type Receipt struct {
	Merchant string `json:"merchant" example:"EDEKA"`
	Amount   string `json:"amount" example:"23.74"`
	Date     string `json:"date" example:"2024-03-14"`
	Category string `json:"category" example:"food"`
}

// ParseReceipt extracts transaction fields from a receipt image.
func (c *Client) ParseReceipt(ctx context.Context, imageDataURL string) (Receipt, error) {
	if !c.Enabled() {
		return Receipt{}, ErrDisabled
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: fmt.Sprintf(
							"Extract merchant, total amount, date (YYYY-MM-DD) and one category of %s from this receipt. Respond as JSON with the keys merchant, amount, date, category.",
							strings.Join(types.ExpenseCategories, ", "),
						),
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("receipt parsing request failed: %w", err)
	}

	var receipt Receipt
	err = json.Unmarshal([]byte(resp.Choices[0].Message.Content), &receipt)
	if err != nil {
		return Receipt{}, fmt.Errorf("receipt response is not valid JSON: %w", err)
	}

	return receipt, nil
}
