package llm

import (
	"context"
	"sync"
)

// Fake is a Generator that returns canned text or an error.
type Fake struct {
	ResponseText string
	Error        error

	mu      sync.Mutex
	prompts []string
}

func NewFake(response string) *Fake {
	return &Fake{ResponseText: response}
}

func (f *Fake) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Error != nil {
		return "", f.Error
	}
	return f.ResponseText, nil
}

// Prompts returns every prompt received so far.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
