package ai

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient реализация Client на testify/mock для тестов сервисов.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GenerateContent(ctx context.Context, req ContentRequest) (Reply, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(Reply), args.Error(1)
}

func (m *MockClient) SendChatMessage(ctx context.Context, req ChatRequest) (Reply, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(Reply), args.Error(1)
}

func (m *MockClient) GenerateSpeech(ctx context.Context, req SpeechRequest) (Reply, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(Reply), args.Error(1)
}
