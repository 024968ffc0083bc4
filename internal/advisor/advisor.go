package advisor

import (
	"context"
	"fmt"
	"strings"

	"tradegate/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/trace"
)

const systemPrompt = "You are a risk reviewer for index futures trade signals. " +
	"Given one accepted signal, reply with at most three short sentences on its " +
	"plausibility and risk. Never change the levels; the decision is already made."

// ChatCompleter is the slice of the OpenAI client the advisor needs.
type ChatCompleter interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Advisor asks a language model for a qualitative note on an accepted
// decision. It has no authority over the gate; failures only cost the note.
type Advisor struct {
	tracer trace.Tracer
	chat   ChatCompleter
	model  string
}

func New(tracer trace.Tracer, apiKey, model string) *Advisor {
	if apiKey == "" {
		return nil
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Advisor{tracer: tracer, chat: &client.Chat.Completions, model: model}
}

func NewWithCompleter(tracer trace.Tracer, chat ChatCompleter, model string) *Advisor {
	return &Advisor{tracer: tracer, chat: chat, model: model}
}

func (a *Advisor) Review(ctx context.Context, decision domain.Decision) (string, error) {
	if a == nil || a.chat == nil {
		return "", nil
	}

	_, span := a.tracer.Start(ctx, "advisor.review")
	defer span.End()

	resp, err := a.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(describeDecision(decision)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describeDecision(d domain.Decision) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", strings.ToUpper(string(d.Direction)), d.Symbol)
	if d.Interval != "" {
		fmt.Fprintf(&sb, " on %s", d.Interval)
	}
	if d.Levels != nil {
		fmt.Fprintf(&sb, ": entry %.2f, stop %.2f, targets %.2f / %.2f",
			d.Levels.Entry, d.Levels.StopLoss, d.Levels.TakeProfit1, d.Levels.TakeProfit2)
	}
	return sb.String()
}
