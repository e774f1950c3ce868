package ai

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited ограничивает частоту исходящих запросов к провайдеру.
// Ожидание прерывается отменой контекста; повторов и таймаутов здесь нет.
type RateLimited struct {
	next    Client
	limiter *rate.Limiter
}

// NewRateLimited оборачивает клиента. При perSecond <= 0 ограничений нет.
func NewRateLimited(next Client, perSecond float64) *RateLimited {
	var limiter *rate.Limiter
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	} else {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &RateLimited{next: next, limiter: limiter}
}

func (r *RateLimited) GenerateContent(ctx context.Context, req ContentRequest) (Reply, error) {
	if err := r.wait(ctx); err != nil {
		return Reply{}, err
	}
	return r.next.GenerateContent(ctx, req)
}

func (r *RateLimited) SendChatMessage(ctx context.Context, req ChatRequest) (Reply, error) {
	if err := r.wait(ctx); err != nil {
		return Reply{}, err
	}
	return r.next.SendChatMessage(ctx, req)
}

func (r *RateLimited) GenerateSpeech(ctx context.Context, req SpeechRequest) (Reply, error) {
	if err := r.wait(ctx); err != nil {
		return Reply{}, err
	}
	return r.next.GenerateSpeech(ctx, req)
}

func (r *RateLimited) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}
