package service

import (
	"context"
	"fmt"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/llm"
)

// Upstream sampling parameters. Fixed on purpose: callers never tune the
// model, which keeps coaching behavior predictable across clients.
const (
	coachMaxTokens     = 500
	knowledgeMaxTokens = 1200
	chatTemperature    = 0.7
)

// coachPersona is the system prompt for workout-scoped coaching. The caller's
// workout context is spliced into it per request.
const coachPersona = `You are a helpful Hyrox training coach assistant. You're helping an athlete prepare for a Hyrox race.

Current Workout Context:
%s

You have deep knowledge of:
- Hyrox race format (8 stations + 8x1km runs)
- All Hyrox stations: SkiErg, Sled Push, Sled Pull, Burpee Broad Jumps, Rowing, Farmers Carry, Lunges, Wall Balls
- Strength training for functional fitness
- Running and endurance training
- Recovery and nutrition for athletes
- Pacing strategies and race tactics

Be concise but helpful. Give practical, actionable advice. If asked about form or technique, be specific about body positioning and common mistakes. Reference the current workout when relevant.`

// hyroxKnowledge is the fixed domain reference for the knowledge-base chat.
const hyroxKnowledge = `# Hyrox Knowledge Base

## Basic Hyrox Format
- 8 x 1km runs
- 8 functional workout stations between each run
- Stations: SkiErg, Sled Push, Sled Pull, Burpee Broad Jumps, Rowing, Farmers Carry, Sandbag Lunges, Wall Balls

## Race Divisions
- Open: Individual competition
- Doubles: Team of 2 (alternating stations)
- Relay: Team of 4 (each person does 2 stations + 2 runs)
- Pro: Elite athletes
- Age Group: Various age categories`

const knowledgePersona = `You are an expert Hyrox coach and knowledge assistant. You have deep expertise in all aspects of Hyrox racing.

%s

You help athletes with:
- Understanding Hyrox race format, rules, and divisions
- Training strategies and programming
- Station-specific techniques and form
- Pacing strategies for race day
- Equipment and gear recommendations
- Nutrition and recovery for Hyrox
- Mental preparation and race tactics

Format your responses using markdown:
- Use **bold** for key terms and emphasis
- Use bullet points and numbered lists for clarity
- Use ### for section headers
- Use *italics* for important notes
- Keep responses clear, actionable, and well-structured

Be comprehensive but concise. Provide practical, evidence-based advice that athletes can immediately apply to their training and racing.`

// CoachService is the chat relay core: it assembles the system prompt and
// forwards the caller's conversation to the upstream completion client.
// Stateless across requests; the caller resends its full history every time.
type CoachService interface {
	// Ask is the single-shot variant: the full completion, or an error.
	Ask(ctx context.Context, messages []domain.ChatMessage, workoutContext string) (string, error)

	// AskStream invokes fn once per upstream token, in upstream order.
	AskStream(ctx context.Context, messages []domain.ChatMessage, workoutContext string, fn func(token string) error) error

	// KnowledgeStream is the knowledge-base variant: a fixed domain prompt,
	// no caller-supplied context.
	KnowledgeStream(ctx context.Context, messages []domain.ChatMessage, fn func(token string) error) error
}

// coachService implements the CoachService interface.
type coachService struct {
	client llm.Client
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(client llm.Client) CoachService {
	return &coachService{client: client}
}

func coachRequest(messages []domain.ChatMessage, workoutContext string) llm.Request {
	return llm.Request{
		System:      fmt.Sprintf(coachPersona, workoutContext),
		Messages:    messages,
		MaxTokens:   coachMaxTokens,
		Temperature: chatTemperature,
	}
}

// Ask forwards the conversation and waits for the full completion.
func (s *coachService) Ask(ctx context.Context, messages []domain.ChatMessage, workoutContext string) (string, error) {
	return s.client.Complete(ctx, coachRequest(messages, workoutContext))
}

// AskStream forwards the conversation and relays tokens as they arrive.
func (s *coachService) AskStream(ctx context.Context, messages []domain.ChatMessage, workoutContext string, fn func(token string) error) error {
	return s.client.Stream(ctx, coachRequest(messages, workoutContext), fn)
}

// KnowledgeStream relays a knowledge-base conversation with the fixed prompt.
func (s *coachService) KnowledgeStream(ctx context.Context, messages []domain.ChatMessage, fn func(token string) error) error {
	req := llm.Request{
		System:      fmt.Sprintf(knowledgePersona, hyroxKnowledge),
		Messages:    messages,
		MaxTokens:   knowledgeMaxTokens,
		Temperature: chatTemperature,
	}
	return s.client.Stream(ctx, req, fn)
}
