package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const defaultSystemPrompt = `You are a non-medical strength training assistant.

You receive the workout history summary for a single exercise, the training pattern detected in it, and the per-set targets suggested for the next session. You must base your conclusions only on the provided data.

Your goals:
- Describe the recent trend for this exercise in clear, neutral language.
- Explain what the detected pattern (progressive overload, rep cycling, deload, stable, or fallback) means for this lifter.
- Relate the suggested targets to the recent sessions (why the numbers moved, or why they did not).
- Give practical, behavioral guidance for executing the next session.

Rules:
- Do NOT provide medical advice, diagnoses, or injury assessments.
- Do NOT recommend supplements or drugs.
- Focus only on training execution (warm-up sets, rest, bar speed, stopping short of failure, logging honestly).
- If the history is thin or the confidence is low, say that explicitly and keep guidance conservative.
- Be concise and concrete. Use the actual numbers from the data.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the trend for this exercise and what the suggested targets aim for.",
  "observations": [
    "3-6 bullet points about the load/rep trend, set shapes, and completion across recent sessions.",
    "At least one item explaining the detected pattern in plain language.",
    "If confidence is low or history is short, one item saying so."
  ],
  "guidance": [
    "3-5 concrete suggestions for the next session tailored to these numbers.",
    "Include at least one suggestion about what to do if the first working set feels much harder or easier than planned."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing one exercise for one lifter.

- "exercise" describes the movement (type, equipment, compound or isolation).
- "pattern" and "confidence" are the detected training pattern and how well the history supports it.
- "recent_sessions" summarize each recent session: average and top-set load, reps, total volume, per-set details, and whether every set was completed.
- "suggestion" holds the per-set targets proposed for the next session.

Use:
- "recent_sessions" to understand the trend,
- "pattern" to frame what the trend means,
- "suggestion" to anchor your guidance in the actual proposed numbers.

JSON:

%s

Based on this data, respond in the required JSON format.`

// CoachingLLM is the interface for generating coaching notes using an LLM.
type CoachingLLM interface {
	// GenerateCoaching takes a context object and returns LLM-generated coaching notes.
	GenerateCoaching(ctx context.Context, coachingCtx *domain.CoachingContext) (*domain.CoachingOutput, error)
}

// OpenAIClient implements CoachingLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for generating coaching notes.
// systemPrompt overrides the built-in prompt when non-empty (it is typically
// loaded from Langfuse prompt management). Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model, systemPrompt string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateCoaching calls OpenAI to generate coaching notes for a suggestion.
func (c *OpenAIClient) GenerateCoaching(ctx context.Context, coachingCtx *domain.CoachingContext) (*domain.CoachingOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	// Serialize context to JSON
	contextJSON, err := json.MarshalIndent(coachingCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	// Call OpenAI
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	// Parse the JSON response
	var output domain.CoachingOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
