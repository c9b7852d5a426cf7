package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"tolet/models"
	"tolet/utils"
)

// Fixed fallback strings: the insight surface never errors, it degrades.
const (
	insightMissingKey  = "AI insights are currently unavailable (API key missing)."
	insightEmptyAnswer = "Could not generate insight at this time."
	insightFailed      = "The AI assistant is currently resting. Please check the description manually!"
)

// InsightService produces a short natural-language summary of a listing via
// a hosted model. It is optional: without an API key every call returns the
// fixed unavailable string.
type InsightService struct {
	client *openai.Client
	logger *utils.Logger
}

// NewInsightService creates the service. An empty apiKey disables it.
func NewInsightService(apiKey string, logger *utils.Logger) *InsightService {
	s := &InsightService{logger: logger}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// Enabled reports whether a model credential is configured.
func (s *InsightService) Enabled() bool {
	return s.client != nil
}

// PropertyInsight returns a three-sentence summary of the listing for a
// student audience. Any failure or missing credential yields a fixed
// fallback string, never an error.
func (s *InsightService) PropertyInsight(ctx context.Context, p models.Property, report *models.RentReport) string {
	if s.client == nil {
		return insightMissingKey
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildInsightPrompt(p, report),
			},
		},
		MaxTokens: 500,
	})
	if err != nil {
		s.logger.Warn("insight request failed: %v", err)
		return insightFailed
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return insightEmptyAnswer
	}
	return resp.Choices[0].Message.Content
}

// buildInsightPrompt renders the templated prompt, optionally enriched with
// market rent context from the stats service.
func buildInsightPrompt(p models.Property, report *models.RentReport) string {
	prompt := fmt.Sprintf(`You are a helpful student housing expert in India.
Analyze this property and provide a 3-sentence helpful summary for a student.
Property Type: %s
Room Type: %s
Rent: ₹%d
Address: %s
Description: %s

Focus on value for money, neighborhood safety, and suitability for a student.`,
		p.PropertyType, p.RoomType, p.Rent, p.Address, p.Description)

	if report != nil && report.TotalListings > 0 {
		prompt += fmt.Sprintf(
			"\nFor context, the average rent across %d current listings is ₹%.0f.",
			report.TotalListings, report.AverageRent)
	}
	return prompt
}
