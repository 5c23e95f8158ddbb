// Package openai translates search terms through an OpenAI-compatible chat
// API. Translation runs upstream of query classification: terms reach the
// catalog backend in the store's default locale.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/domain"
	"github.com/merxlabs/searchgate/internal/metrics"
	"github.com/merxlabs/searchgate/internal/session"
)

const systemPrompt = "You translate e-commerce search terms. Reply with the translated term only, " +
	"no quotes, no explanations. Keep brand names and model numbers untouched."

// Translator translates search terms into the store's default locale using an
// OpenAI-compatible chat endpoint.
type Translator struct {
	client        *openai.Client
	model         string
	defaultLocale string
	logger        *zap.Logger
}

// Config holds the translation provider settings.
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	DefaultLocale string
	Logger        *zap.Logger
}

// NewTranslator creates an OpenAI-compatible translation provider.
func NewTranslator(cfg *Config) *Translator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Translator{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         cfg.Model,
		defaultLocale: cfg.DefaultLocale,
		logger:        cfg.Logger,
	}
}

// Translate returns the term in the store's default locale. A no-op when the
// caller's locale is unknown or already matches.
func (t *Translator) Translate(ctx context.Context, term string) (string, error) {
	locale := session.FromContext(ctx).Locale
	if locale == "" || strings.EqualFold(locale, t.defaultLocale) {
		return term, nil
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate from %s to %s: %s",
					locale, t.defaultLocale, term),
			},
		},
	})
	if err != nil {
		metrics.TranslationRequestsTotal.WithLabelValues("error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.TranslationRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("empty translation response: %w", domain.ErrTranslationFailed)
	}

	metrics.TranslationRequestsTotal.WithLabelValues("success").Inc()

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return term, nil
	}
	return translated, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrTranslationFailed.
func parseAPIError(err error) error {
	wrap := domain.ErrTranslationFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("translation API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("translation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("translation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("translation request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
