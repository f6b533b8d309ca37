// Package classifier turns submitted text and screenshots into a Verdict.
//
// Remote providers are OpenAI-compatible chat-completions endpoints tried in
// order; the first one that returns a well-formed verdict wins. With no
// provider configured the keyword heuristic answers instead.
package classifier

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"
)

// MaxImageBytes caps the decoded size of an attached image.
const MaxImageBytes = 4 << 20

const (
	OutcomeRemote    = "remote"
	OutcomeHeuristic = "heuristic"
	OutcomeCacheHit  = "cache_hit"
	OutcomeFailed    = "failed"
)

var (
	ErrEmptySubmission  = errors.New("text or image is required")
	ErrImageTooLarge    = errors.New("image exceeds 4 MiB")
	ErrUnsupportedImage = errors.New("unsupported image")
	// ErrAnalysisFailed is the only error callers see for provider problems.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// FailureMessage is shown to users when ErrAnalysisFailed is returned.
const FailureMessage = "Failed to analyze the content. Please try again."

// Image is an attached screenshot, already decoded.
type Image struct {
	MimeType string
	Data     []byte
}

// Request is one classification job.
type Request struct {
	Text  string
	Image *Image
}

// Validate checks the request before any network call.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" && (r.Image == nil || len(r.Image.Data) == 0) {
		return ErrEmptySubmission
	}
	if r.Image == nil {
		return nil
	}
	if len(r.Image.Data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	if !strings.HasPrefix(strings.ToLower(r.Image.MimeType), "image/") {
		return fmt.Errorf("%w: mime type %q", ErrUnsupportedImage, r.Image.MimeType)
	}
	return nil
}

// DecodeImage decodes base64 image data. A data URL prefix is accepted.
func DecodeImage(mimeType, data string) (*Image, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		head, payload, ok := strings.Cut(data, ",")
		if !ok {
			return nil, fmt.Errorf("%w: malformed data URL", ErrUnsupportedImage)
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(head, "data:"), ";base64")
		}
		data = payload
	}
	// Reject before decoding anything that cannot fit.
	if base64.StdEncoding.DecodedLen(len(data)) > MaxImageBytes+3 {
		return nil, ErrImageTooLarge
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return &Image{MimeType: mimeType, Data: raw}, nil
}

// Verdict is the validated classification result. Every field is total.
type Verdict struct {
	Category          models.Category     `json:"category"`
	RiskScore         int                 `json:"riskScore"`
	ConfidenceScore   int                 `json:"confidenceScore"`
	Analysis          string              `json:"analysis"`
	RedFlags          []string            `json:"redFlags"`
	Recommendation    string              `json:"recommendation"`
	LinkAnalysis      models.LinkAnalysis `json:"linkAnalysis"`
	KeywordHighlights []string            `json:"keywordHighlights"`
	SimilarScamsCount int                 `json:"similarScamsCount"`
}

// Apply copies the verdict onto a report.
func (v Verdict) Apply(r *models.Report) {
	r.Category = v.Category
	r.RiskScore = v.RiskScore
	r.ConfidenceScore = v.ConfidenceScore
	r.Analysis = v.Analysis
	r.RedFlags = v.RedFlags
	r.Recommendation = v.Recommendation
	r.LinkAnalysis = v.LinkAnalysis
	r.KeywordHighlights = v.KeywordHighlights
	r.SimilarScamsCount = v.SimilarScamsCount
	r.Normalize()
}

// Classifier is what the report service depends on.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Verdict, error)
}

// Cache stores encoded verdicts by content fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Recorder receives one observation per Classify call.
type Recorder interface {
	RecordClassification(outcome string, d time.Duration)
}

// Provider is one chat-completions endpoint.
type Provider struct {
	Name   string
	URL    string
	APIKey string
	Model  string
	Vision bool
}

// ProvidersFromConfig returns the configured providers in priority order.
func ProvidersFromConfig(cfg *config.Config) []Provider {
	var out []Provider
	if cfg.GLMAPIKey != "" {
		out = append(out, Provider{Name: "glm", URL: cfg.GLMAPIURL, APIKey: cfg.GLMAPIKey, Model: cfg.GLMVisionModel, Vision: true})
	}
	if cfg.DeepSeekAPIKey != "" {
		out = append(out, Provider{Name: "deepseek", URL: cfg.DeepSeekAPIURL, APIKey: cfg.DeepSeekAPIKey, Model: cfg.DeepSeekModel})
	}
	if cfg.OpenAIAPIKey != "" {
		out = append(out, Provider{Name: "openai", URL: cfg.OpenAIAPIURL, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, Vision: true})
	}
	return out
}

type Client struct {
	providers  []Provider
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	cache      Cache
	cacheTTL   time.Duration
	metrics    Recorder
}

type Option func(*Client)

func WithCache(c Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

func WithRecorder(r Recorder) Option {
	return func(cl *Client) { cl.metrics = r }
}

func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// WithRateLimit limits outbound provider calls. perMinute <= 0 disables it.
func WithRateLimit(perMinute, burst int) Option {
	return func(cl *Client) {
		if perMinute <= 0 {
			cl.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	}
}

func New(providers []Provider, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		providers:  providers,
		httpClient: &http.Client{},
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remote reports whether any provider is configured.
func (c *Client) Remote() bool {
	return len(c.providers) > 0
}

func (c *Client) Classify(ctx context.Context, req Request) (Verdict, error) {
	if err := req.Validate(); err != nil {
		return Verdict{}, err
	}
	start := time.Now()

	if !c.Remote() {
		v := Heuristic(req.Text)
		c.record(OutcomeHeuristic, start)
		return v, nil
	}

	key := Fingerprint(req)
	if v, ok := c.cached(ctx, key); ok {
		c.record(OutcomeCacheHit, start)
		return v, nil
	}

	for _, p := range c.providers {
		if req.Image != nil && !p.Vision {
			continue
		}
		if err := c.limiter.Wait(ctx); err != nil {
			slog.Warn("classification rate limit wait aborted", "error", err)
			break
		}
		v, err := c.callProvider(ctx, p, req)
		if err != nil {
			slog.Warn("classification provider failed", "provider", p.Name, "error", err)
			continue
		}
		c.store(ctx, key, v)
		c.record(OutcomeRemote, start)
		return v, nil
	}

	c.record(OutcomeFailed, start)
	return Verdict{}, ErrAnalysisFailed
}

func (c *Client) cached(ctx context.Context, key string) (Verdict, bool) {
	if c.cache == nil {
		return Verdict{}, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("verdict cache read failed", "error", err)
		return Verdict{}, false
	}
	if !ok {
		return Verdict{}, false
	}
	var v Verdict
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("verdict cache entry undecodable, evicting", "error", err)
		if err := c.cache.Delete(ctx, key); err != nil {
			slog.Warn("verdict cache eviction failed", "error", err)
		}
		return Verdict{}, false
	}
	return v, true
}

func (c *Client) store(ctx context.Context, key string, v Verdict) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
		slog.Warn("verdict cache write failed", "error", err)
	}
}

func (c *Client) record(outcome string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordClassification(outcome, time.Since(start))
	}
}

// Fingerprint is the cache key for a request: a blake2b-256 digest of the
// text, the image mime type and the image bytes.
func Fingerprint(req Request) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(strings.TrimSpace(req.Text)))
	h.Write([]byte{0})
	if req.Image != nil {
		h.Write([]byte(strings.ToLower(req.Image.MimeType)))
		h.Write([]byte{0})
		h.Write(req.Image.Data)
	}
	return "verdict:" + hex.EncodeToString(h.Sum(nil))
}
