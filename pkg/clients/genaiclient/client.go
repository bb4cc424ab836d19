package genaiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jakechorley/escala/pkg/core/advisor"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client asks Gemini for assignment suggestions. It implements advisor.Advisor.
type Client struct {
	model    string
	generate generateFunc
	logger   *zap.Logger
}

// NewClient creates a Gemini advisor authenticated with an API key
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is not set", advisor.ErrUnavailable)
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		model:    model,
		generate: client.Models.GenerateContent,
		logger:   logger,
	}, nil
}

// SuggestAssignments sends the request as a prompt and decodes the JSON reply
func (c *Client) SuggestAssignments(ctx context.Context, req advisor.Request) ([]advisor.Proposal, error) {
	prompt := buildPrompt(req)
	c.logger.Debug("Requesting suggestions from gemini",
		zap.String("model", c.model),
		zap.String("date", req.Date),
		zap.Int("volunteers", len(req.Volunteers)),
		zap.Int("open_slots", req.OpenSlots))

	resp, err := c.generate(ctx, c.model, genai.Text(prompt), generateConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	proposals, err := parseProposals(resp.Text())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Received suggestions from gemini", zap.Int("proposals", len(proposals)))
	return proposals, nil
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"roomId":      {Type: genai.TypeString},
					"volunteerId": {Type: genai.TypeString},
					"reason":      {Type: genai.TypeString},
				},
				Required: []string{"roomId", "volunteerId"},
			},
		},
	}
}

func buildPrompt(req advisor.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "As a children's ministry coordinator, suggest the volunteer schedule for %s.\n\n", req.Date)

	b.WriteString("Rooms (id, name, capacity, already assigned):\n")
	for _, r := range req.Rooms {
		fmt.Fprintf(&b, "- %s: %s, capacity %d, assigned %d\n", r.ID, r.Name, r.Capacity, r.Assigned)
	}

	b.WriteString("\nVolunteers (id, name, total assignments so far):\n")
	for _, v := range req.Volunteers {
		fmt.Fprintf(&b, "- %s: %s, %d\n", v.ID, v.Name, v.TotalAssignments)
	}

	b.WriteString("\nRules:\n")
	b.WriteString("1. Prefer volunteers with the fewest total assignments.\n")
	b.WriteString("2. Never exceed a room's capacity, counting volunteers already assigned.\n")
	b.WriteString("3. Do not place the same volunteer in two rooms.\n")
	fmt.Fprintf(&b, "4. Fill at most %d open slots.\n", req.OpenSlots)
	b.WriteString("5. Reply with a JSON array of objects with roomId, volunteerId and an optional short reason, using only the ids above.\n")

	return b.String()
}

func parseProposals(text string) ([]advisor.Proposal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	var proposals []advisor.Proposal
	if err := json.Unmarshal([]byte(text), &proposals); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	return proposals, nil
}
