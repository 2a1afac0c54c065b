package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/config"
	"github.com/dignilife/walletcore/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var ErrUnavailable = errors.New("fx provider unavailable")

type Response struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// Provider fetches display-conversion rates from the external FX service.
// Rates are never used for settlement amounts; settlement is always in the
// base currency.
type Provider struct {
	url    string
	client clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Provider {
	return &Provider{
		url:    cfg.FXAddress,
		client: client,
	}
}

func (p *Provider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	url := p.url + "/api/rates/" + from + "/" + to

	var statusCode int
	var respBody []byte
	var respHeaders http.Header
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		default:
			statusCode, respBody, respHeaders, err = p.client.Get(url, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return decimal.Zero, fmt.Errorf("failed to fetch rate %s/%s after %d retries: %w", from, to, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				p.waitRetryAfter(respHeaders, attempt)
				continue
			case http.StatusOK:
				return p.parseRate(respBody, from, to)
			default:
				zap.L().Error("Unexpected status code from fx provider", zap.Int("status", statusCode))
				return decimal.Zero, ErrUnavailable
			}
		}
	}
	return decimal.Zero, ErrUnavailable
}

func (p *Provider) parseRate(respBody []byte, from, to string) (decimal.Decimal, error) {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse fx response: %w", err)
	}
	if response.From != from || response.To != to {
		return decimal.Zero, fmt.Errorf("rate pair mismatch: expected %s/%s, got %s/%s", from, to, response.From, response.To)
	}
	if response.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("non-positive rate for %s/%s", from, to)
	}
	return response.Rate, nil
}

func (p *Provider) waitRetryAfter(respHeaders http.Header, attempt int) {
	retryAfter := retryInterval * time.Duration(attempt)
	if header := respHeaders.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("Rate limit from fx provider, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", retryAfter))
	time.Sleep(retryAfter)
}
