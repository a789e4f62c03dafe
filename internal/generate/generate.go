// Package generate asks an OpenAI-compatible chat model for the initial
// onboarding page document. The reply must satisfy the input contract (one
// <main> wrapper of marked block elements) before it is handed to the parser.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/brief"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/cache"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/htmldoc"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/llm"
)

// ErrEmptyDocument indicates the model produced no usable HTML body.
var ErrEmptyDocument = errors.New("model returned no usable document")

// Generator produces page documents from briefs.
type Generator struct {
	Client llm.Client
	Model  string
	Cache  *cache.PageCache
	// SystemPrompt, when non-empty, overrides the default system message.
	SystemPrompt string
}

const defaultSystemPrompt = `You are a landing page generator for mobile app onboarding screens.
Respond with a single complete HTML document and nothing else: no markdown, no commentary.
The <body> must contain exactly one <main> element. Every piece of page content is a direct
child of <main> and carries a data-element attribute naming its kind, one of: headline,
subheadline, paragraph, feature-list, call-to-action, testimonial, link, footer, illustration.
Feature lists are <ul> elements with one <li> per feature. Testimonials are <blockquote>
elements whose attribution uses child elements with class "author", "role" and "company".
Page chrome, backgrounds and layout CSS live outside <main> so the document doubles as a theme.`

// Generate returns a full HTML document for the brief. Replies are cached by
// model and prompt digest; fenced replies are unwrapped; documents violating
// the input contract are rejected.
func (g *Generator) Generate(ctx context.Context, b brief.Brief) (string, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return "", errors.New("generator not configured")
	}
	system := defaultSystemPrompt
	if strings.TrimSpace(g.SystemPrompt) != "" {
		system = g.SystemPrompt
	}
	user := buildUserMessage(b)

	if g.Cache != nil {
		key := cache.KeyFrom(g.Model, system+"\n\n"+user)
		if raw, ok, _ := g.Cache.Get(ctx, key); ok {
			var out struct {
				HTML string `json:"html"`
			}
			if err := json.Unmarshal(raw, &out); err == nil && strings.TrimSpace(out.HTML) != "" {
				return out.HTML, nil
			}
		}
	}

	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyDocument
	}
	doc := stripFences(resp.Choices[0].Message.Content)
	if strings.TrimSpace(doc) == "" {
		return "", ErrEmptyDocument
	}
	if err := htmldoc.ValidateDocument(doc); err != nil {
		return "", fmt.Errorf("generated document violates contract: %w", err)
	}

	if g.Cache != nil {
		key := cache.KeyFrom(g.Model, system+"\n\n"+user)
		raw, _ := json.Marshal(struct {
			HTML string `json:"html"`
		}{HTML: doc})
		_ = g.Cache.Save(ctx, key, raw)
	}
	return doc, nil
}

func buildUserMessage(b brief.Brief) string {
	var sb strings.Builder
	sb.WriteString("Create the onboarding page for: ")
	sb.WriteString(b.AppName)
	sb.WriteString("\n")
	if b.AudienceHint != "" {
		sb.WriteString("Audience: " + b.AudienceHint + "\n")
	}
	if b.ToneHint != "" {
		sb.WriteString("Tone: " + b.ToneHint + "\n")
	}
	if len(b.Features) > 0 {
		sb.WriteString("Highlight these features:\n")
		for _, f := range b.Features {
			sb.WriteString("- " + f + "\n")
		}
	}
	return sb.String()
}

// stripFences unwraps a reply the model wrapped in a markdown code fence.
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		// Drop the info string ("html") on the opening fence line.
		t = t[i+1:]
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
