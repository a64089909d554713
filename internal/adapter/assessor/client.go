// Package assessor implements the HTTP client for the AI food photo quality
// assessor. The upstream wraps its JSON verdict in markdown fences often
// enough that stripping them is part of the protocol.
package assessor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/resqbite/resqbite-backend/internal/config"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// Client talks to the quality assessor upstream.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from config.
func NewClient(cfg config.AssessorConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "assessor"),
	}
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "assessor"),
	}
}

type assessRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// verdict is the raw upstream response before the isFood split.
type verdict struct {
	IsFood  bool   `json:"isFood"`
	Message string `json:"message"`
	domain.QualityAssessment
}

// Assess submits a base64-encoded food photo and returns the structured
// verdict. Error mapping:
//   - 429, 402, 5xx and transport failures → domain.ErrUpstreamUnavailable
//   - unparseable 200 body → domain.ErrMalformedUpstream
//   - isFood:false → domain.ErrNotFood carrying the upstream message
func (c *Client) Assess(ctx context.Context, imageBase64 string) (domain.QualityAssessment, error) {
	body, err := json.Marshal(assessRequest{ImageBase64: imageBase64})
	if err != nil {
		return domain.QualityAssessment{}, fmt.Errorf("assessor: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/assess", bytes.NewReader(body))
	if err != nil {
		return domain.QualityAssessment{}, fmt.Errorf("assessor: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "assessor request failed", slog.String("error", err.Error()))
		return domain.QualityAssessment{}, fmt.Errorf("assessor: transport: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.QualityAssessment{}, fmt.Errorf("assessor: rate limited: %w", domain.ErrUpstreamUnavailable)
	case resp.StatusCode == http.StatusPaymentRequired:
		return domain.QualityAssessment{}, fmt.Errorf("assessor: quota exhausted: %w", domain.ErrUpstreamUnavailable)
	case resp.StatusCode >= 500:
		return domain.QualityAssessment{}, fmt.Errorf("assessor: upstream status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	case resp.StatusCode != http.StatusOK:
		return domain.QualityAssessment{}, fmt.Errorf("assessor: unexpected status %d: %w", resp.StatusCode, domain.ErrMalformedUpstream)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.QualityAssessment{}, fmt.Errorf("assessor: read body: %v: %w", err, domain.ErrUpstreamUnavailable)
	}

	var v verdict
	if err := json.Unmarshal(stripFences(raw), &v); err != nil {
		c.log.WarnContext(ctx, "assessor returned unparseable body", slog.Int("bytes", len(raw)))
		return domain.QualityAssessment{}, fmt.Errorf("assessor: decode verdict: %w", domain.ErrMalformedUpstream)
	}

	if !v.IsFood {
		msg := v.Message
		if msg == "" {
			msg = "image does not appear to contain food"
		}
		return domain.QualityAssessment{}, fmt.Errorf("%s: %w", msg, domain.ErrNotFood)
	}

	if !v.QualityRating.IsValid() {
		return domain.QualityAssessment{}, fmt.Errorf("assessor: unknown rating %q: %w", v.QualityRating, domain.ErrMalformedUpstream)
	}

	c.log.DebugContext(ctx, "assessment complete",
		slog.Int("overall_score", v.OverallScore),
		slog.String("rating", string(v.QualityRating)),
	)

	return v.QualityAssessment, nil
}

// stripFences removes a leading ```json (or bare ```) fence and the matching
// trailing fence, tolerating surrounding whitespace.
func stripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && len(strings.TrimSpace(s[:idx])) <= len("json") {
		// drop the language tag line
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return []byte(strings.TrimSpace(s))
}
