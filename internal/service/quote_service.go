package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/config"
	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/metrics"
)

// maxQuoteResponseBytes caps how much of the provider response is read.
const maxQuoteResponseBytes = 64 * 1024

// QuoteService fetches a motivational quote from the external provider.
// It never fails: any provider problem degrades to the local fallback
// quote, observable only through logs and metrics.
type QuoteService struct {
	client  *http.Client
	url     string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewQuoteService creates a new QuoteService. The HTTP client timeout
// bounds the provider call end to end.
func NewQuoteService(cfg config.QuoteConfig, m *metrics.Metrics, logger zerolog.Logger) *QuoteService {
	return &QuoteService{
		client:  &http.Client{Timeout: cfg.Timeout},
		url:     cfg.URL,
		metrics: m,
		logger:  logger.With().Str("service", "quote").Logger(),
	}
}

// providerQuote is the provider's wire format: an array of objects with
// "q" (text) and "a" (author) fields.
type providerQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Get returns a motivational quote. The returned quote is either fresh
// from the provider or the fixed fallback; callers cannot tell the
// difference and never see an error.
func (s *QuoteService) Get(ctx context.Context) domain.Quote {
	s.metrics.QuoteRequestsTotal.Inc()

	quote, err := s.fetch(ctx)
	if err != nil {
		s.metrics.QuoteFallbacksTotal.Inc()
		s.logger.Warn().Err(err).Msg("quote provider failed, serving fallback")
		return domain.FallbackQuote()
	}
	return quote
}

// fetch performs the provider call and parses the response.
func (s *QuoteService) fetch(ctx context.Context) (domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQuoteResponseBytes))
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to read provider response: %w", err)
	}

	var quotes []providerQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to parse provider response: %w", err)
	}
	if len(quotes) == 0 || quotes[0].Q == "" {
		return domain.Quote{}, fmt.Errorf("provider returned no usable quote")
	}

	return domain.Quote{Text: quotes[0].Q, Author: quotes[0].A}, nil
}
