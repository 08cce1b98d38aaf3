package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pulse-digest/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer is the optional AI summary interface used by the digest builder.
// Scoring never depends on it.
type Summarizer interface {
	// SummarizeTopic creates a concise 1-2 sentence summary for a topic in the given language.
	SummarizeTopic(ctx context.Context, topic model.Topic, language string) (string, error)
	// SummarizeDigest creates a short overview paragraph for a set of topics in the given language.
	SummarizeDigest(ctx context.Context, topics []model.Topic, language string) (string, error)
}

// OpenAIClient implements Summarizer using OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) SummarizeTopic(ctx context.Context, topic model.Topic, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	body := strings.TrimSpace(topic.Summary)
	if body == "" {
		body = topic.Title
	}
	if len([]rune(body)) > 1000 {
		body = string([]rune(body)[:1000])
	}

	sys := fmt.Sprintf(
		"Rewrite the text into a summary, write in %s, return 1-2 sentences (30-120 words) summarizing the topic. Plain text, no links.",
		langOrDefault(language))
	user := fmt.Sprintf("Title: %s\nSummary: %s", topic.Title, body)
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: summarize topic error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) SummarizeDigest(ctx context.Context, topics []model.Topic, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 300*time.Second)
	defer cancel()
	if len(topics) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, t := range topics {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "- %s\n", t.Title)
	}
	sys := fmt.Sprintf(
		"Rewrite the text into a summary, write in %s, return 3-5 sentences (90-270 words) summarizing today's highlights. Plain text, no links.",
		langOrDefault(language))
	user := fmt.Sprintf("Top topics:\n%s\nTask: write the overview paragraph for today's digest. Output the summarization only.", b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: summarize digest error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
