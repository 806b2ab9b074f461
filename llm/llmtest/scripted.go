// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/maya-agents-go/llm"
)

// Reply is one scripted answer. A non-nil Err fails the call.
type Reply struct {
	Text string
	Err  error
}

// Rule answers any request whose prompt text contains Match.
type Rule struct {
	Match string
	Reply Reply
}

// Provider replays canned replies and records every request it sees.
// Rules are checked first (in order); otherwise the queue is consumed.
type Provider struct {
	mu       sync.Mutex
	rules    []Rule
	queue    []Reply
	requests []*llm.GenerationRequest
}

// New returns a provider that answers from queue in order
func New(queue ...Reply) *Provider {
	return &Provider{queue: queue}
}

// On registers a rule and returns the provider for chaining
func (p *Provider) On(match string, reply Reply) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules = append(p.rules, Rule{Match: match, Reply: reply})
	return p
}

// Name implements llm.Provider
func (p *Provider) Name() string {
	return "scripted"
}

// Generate implements llm.Provider
func (p *Provider) Generate(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, request)

	text := PromptText(request)
	for _, rule := range p.rules {
		if strings.Contains(text, rule.Match) {
			return respond(rule.Reply)
		}
	}

	if len(p.queue) == 0 {
		return nil, fmt.Errorf("llmtest: no scripted reply for request %d", len(p.requests))
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	return respond(next)
}

// Calls returns how many requests were made
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// Requests returns a copy of the recorded requests
func (p *Provider) Requests() []*llm.GenerationRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*llm.GenerationRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// PromptText flattens the system prompt and every input content into one string
func PromptText(request *llm.GenerationRequest) string {
	var b strings.Builder
	b.WriteString(request.SystemPrompt)
	for _, item := range request.InputArray {
		if content, ok := item["content"].(string); ok {
			b.WriteString("\n")
			b.WriteString(content)
		}
	}
	return b.String()
}

func respond(r Reply) (*llm.GenerationResponse, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return &llm.GenerationResponse{
		RawOutput: r.Text,
		Usage:     llm.Usage{TotalTokens: len(strings.Fields(r.Text))},
	}, nil
}
