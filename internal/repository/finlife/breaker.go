package finlife

import (
	"context"
	"errors"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
	"youthBanking/pkg/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

// PageFetcher fetches a single page of finlife products.
type PageFetcher interface {
	FetchPage(ctx context.Context, kind domain.ProductKind, pageNo int) (*Page, error)
}

// BreakerClient stops hammering finlife once it keeps failing and retries
// after a cool-down.
type BreakerClient struct {
	next PageFetcher
	cb   *gobreaker.CircuitBreaker[*Page]
}

func NewBreakerClient(next PageFetcher) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker[*Page](gobreaker.Settings{
		Name:        "finlife-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &BreakerClient{next: next, cb: cb}
}

func (b *BreakerClient) FetchPage(ctx context.Context, kind domain.ProductKind, pageNo int) (*Page, error) {
	page, err := b.cb.Execute(func() (*Page, error) {
		return b.next.FetchPage(ctx, kind, pageNo)
	})
	if err != nil {
		outcome := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.FinlifeFetches.WithLabelValues(string(kind), outcome).Inc()
		return nil, err
	}

	metrics.FinlifeFetches.WithLabelValues(string(kind), "success").Inc()
	return page, nil
}

func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
