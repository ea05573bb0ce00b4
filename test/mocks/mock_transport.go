package mocks

import (
	"context"
	"sync"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
)

// TransportCall is one captured merchant handler submission
type TransportCall struct {
	Session ports.Session
	Query   string
}

// MockTransport is a mock implementation of MerchantHandlerTransport for testing
type MockTransport struct {
	mu sync.Mutex

	// Response to return
	body string
	err  error

	// PostFunc overrides the canned response when set
	PostFunc func(ctx context.Context, session ports.Session, query string) (string, error)

	// Call tracking
	Calls []TransportCall
}

// NewMockTransport creates a mock transport replying with body
func NewMockTransport(body string) *MockTransport {
	return &MockTransport{body: body}
}

// SetResponse sets the reply returned from Post
func (m *MockTransport) SetResponse(body string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.body = body
	m.err = err
}

// Post captures the call and returns the configured reply
func (m *MockTransport) Post(ctx context.Context, session ports.Session, query string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, TransportCall{Session: session, Query: query})
	body, err, postFunc := m.body, m.err, m.PostFunc
	m.mu.Unlock()

	if postFunc != nil {
		return postFunc(ctx, session, query)
	}
	return body, err
}

// CallCount returns the number of Post calls
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent submission
func (m *MockTransport) LastCall() TransportCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return TransportCall{}
	}
	return m.Calls[len(m.Calls)-1]
}
