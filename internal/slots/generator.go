package slots

import "context"

// Generator is the external text generation capability.  Generate returns
// the raw reply, expected to be a JSON array of "HH:MM" strings.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StaticGenerator replies with a canned answer.  It stands in for the live
// adapter in tests and local development.
type StaticGenerator struct {
	Reply string
	Err   error
	Calls int
}

// Generate counts the call and returns Reply, or Err when set.
func (s *StaticGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
