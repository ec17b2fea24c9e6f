package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lazyfood/internal/core/ai/cache"
	"lazyfood/internal/core/ai/gemini"
	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

// Service fronts the model with response caching and per-process request
// spacing. Callers get the decoded, untyped response body.
type Service struct {
	cfg         *config.Config
	client      *gemini.Client
	cache       cache.Cache
	mu          sync.Mutex
	lastRequest time.Time
}

// NewService creates the AI service. A nil cache disables caching.
func NewService(cfg *config.Config, responseCache cache.Cache) *Service {
	return &Service{
		cfg:    cfg,
		client: gemini.NewClient(cfg),
		cache:  responseCache,
	}
}

// Generate returns the decoded model response for the prompt. Responses are
// cached per prompt and output budget, so a retry with a larger budget never
// replays a truncated cached body.
func (s *Service) Generate(ctx context.Context, prompt string, maxOutputTokens int) (any, error) {
	cacheKey := fmt.Sprintf("%s|%d", normalizePrompt(prompt), maxOutputTokens)

	if s.cache != nil {
		if body, err := s.cache.Get(ctx, cacheKey); err == nil {
			decoded, err := gemini.DecodeBody(body)
			if err == nil {
				return decoded, nil
			}
			common.LogWarn("cached response body undecodable, regenerating", zap.Error(err))
		}
	}

	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	decoded, body, err := s.client.Generate(ctx, prompt, maxOutputTokens)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, body); err != nil {
			common.LogWarn("failed to cache model response", zap.Error(err))
		}
	}
	return decoded, nil
}

// normalizePrompt collapses whitespace so formatting changes in prompt
// templates do not fragment the cache.
func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(prompt), " ")
}

// checkRequestRate enforces a minimum interval between model calls derived
// from the configured request budget per window.
func (s *Service) checkRequestRate() error {
	if !s.cfg.RateLimit.Enabled || s.cfg.RateLimit.Requests <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spacing := s.cfg.RateLimit.Window / time.Duration(s.cfg.RateLimit.Requests)
	if time.Since(s.lastRequest) < spacing {
		return errors.New("model request rate exceeded")
	}
	s.lastRequest = time.Now()
	return nil
}

// CacheStats exposes cache counters for the readiness endpoint.
func (s *Service) CacheStats() map[string]any {
	if s.cache == nil {
		return map[string]any{"enabled": false}
	}
	return s.cache.Stats()
}

// Close releases the model client and cache.
func (s *Service) Close() error {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			return err
		}
	}
	return s.client.Close()
}
