package usecase

import (
	"context"
	"sync"

	"github.com/menuscan/backend/internal/domain"
)

// MockModelClient is a mock implementation of domain.ModelClient
type MockModelClient struct {
	mu          sync.Mutex
	response    string
	err         error
	calls       int
	lastPayload domain.RequestPayload
	onSend      func(ctx context.Context)
}

func NewMockModelClient(response string) *MockModelClient {
	return &MockModelClient{response: response}
}

func (m *MockModelClient) Send(ctx context.Context, payload domain.RequestPayload) (string, error) {
	if m.onSend != nil {
		m.onSend(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.lastPayload = payload
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *MockModelClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
