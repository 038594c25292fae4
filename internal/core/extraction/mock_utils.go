package extraction

import (
	"context"
)

type MockLLMClient struct {
	Response  string
	Err       error
	Responses []string
	Prompts   []string
	calls     int
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		r := m.Responses[m.calls%len(m.Responses)]
		m.calls++
		return r, nil
	}
	return m.Response, nil
}
