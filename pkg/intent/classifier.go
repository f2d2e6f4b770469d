package intent

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/plutovoice/go-pluto/pkg/inference"
)

// Model availability is probed through the provider's model listing and
// cached briefly; selection must not hit the network on every utterance.
const (
	DefaultHealthTTL   = 30 * time.Second
	healthProbeTimeout = 10 * time.Second
)

// Classifier resolves text to intents. The model path and the deterministic
// fallback live behind one Classify call; callers cannot observe which path
// produced the result.
type Classifier struct {
	provider inference.Provider
	cache    *ResponseCache
	logger   *slog.Logger

	healthMu  sync.Mutex
	healthIDs []string
	healthAt  time.Time
	healthTTL time.Duration

	codeMu   sync.Mutex
	lastCode string
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithLogger sets the classifier's logger.
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) { c.logger = logger }
}

// WithCache replaces the response cache.
func WithCache(cache *ResponseCache) ClassifierOption {
	return func(c *Classifier) { c.cache = cache }
}

// WithHealthTTL sets how long a model availability probe stays fresh.
func WithHealthTTL(ttl time.Duration) ClassifierOption {
	return func(c *Classifier) { c.healthTTL = ttl }
}

// NewClassifier creates a classifier backed by the given provider.
func NewClassifier(provider inference.Provider, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		provider:  provider,
		cache:     NewResponseCache(DefaultCacheSize, DefaultCacheTTL),
		logger:    slog.Default(),
		healthTTL: DefaultHealthTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves text to an intent. Total: model failure, malformed
// output, and structurally invalid results all land in the deterministic
// fallback, never with the caller.
func (c *Classifier) Classify(ctx context.Context, text string) Intent {
	raw, ok := c.Generate(ctx, IntentPrompt(text), text, TierAuto)
	if !ok {
		return FallbackClassify(text)
	}

	in, status := ExtractIntent(raw)
	if status != ParseOK || in.Validate() != nil {
		c.logger.Debug("model intent rejected", "status", status.String())
		return FallbackClassify(text)
	}

	c.logger.Debug("model intent parsed", "tool", string(in.Tool))
	return in
}

// Generate runs one model invocation: select a model for the query and tier,
// consult the response cache, call with the model's timeout, and apply the
// acceptance test. Returns the response and whether it is usable; failures
// are logged, never returned.
func (c *Classifier) Generate(ctx context.Context, prompt, query string, tier Tier) (string, bool) {
	seed := query
	if seed == "" {
		seed = prompt
	}
	model := c.SelectModel(ctx, seed, tier)
	timeout := TimeoutFor(model)

	if cached, ok := c.cache.Get(prompt, model); ok {
		c.logger.Debug("response cache hit", "model", model)
		c.rememberCode(cached)
		return cached, true
	}

	c.logger.Info("querying model", "model", model, "timeout", timeout)

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.provider.Chat(cctx, &inference.ChatRequest{
		Messages: []inference.Message{inference.NewUserMessage(prompt)},
		Model:    model,
	})
	if err != nil {
		c.logger.Warn("model call failed", "model", model, "error", err)
		return "", false
	}

	out := strings.TrimSpace(resp.Message.Content)
	if out == "" || strings.Contains(out, "Error:") || len(out) <= 10 {
		c.logger.Debug("model response rejected", "model", model, "length", len(out))
		return "", false
	}

	c.cache.Put(prompt, model, out)
	c.rememberCode(out)
	return out, true
}

// SelectModel picks the model for a request. An explicit tier is honored when
// its model is available; TierAuto scores the text instead. When the chosen
// model is down, the fixed fallback order decides, and when nothing is
// available the first fallback entry is used regardless.
func (c *Classifier) SelectModel(ctx context.Context, text string, tier Tier) string {
	preferred := tier.Model()
	if tier == TierAuto {
		preferred = ScoreTier(text).Model()
	}
	if c.available(ctx, preferred) {
		return preferred
	}

	for _, model := range ModelFallback {
		if c.available(ctx, model) {
			c.logger.Info("preferred model unavailable, falling back", "preferred", preferred, "using", model)
			return model
		}
	}

	c.logger.Warn("no models available, using last resort", "model", ModelFallback[0])
	return ModelFallback[0]
}

// AvailableModels returns which of the known models the provider currently
// serves, in fallback order.
func (c *Classifier) AvailableModels(ctx context.Context) []string {
	ids := c.models(ctx)

	var out []string
	for _, model := range ModelFallback {
		if anyContains(ids, model) {
			out = append(out, model)
		}
	}
	return out
}

func (c *Classifier) available(ctx context.Context, model string) bool {
	return anyContains(c.models(ctx), model)
}

// models returns the provider's model listing, refreshed at most once per
// healthTTL. A failed probe is cached too, so an offline daemon is not
// hammered on every utterance.
func (c *Classifier) models(ctx context.Context) []string {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	if time.Since(c.healthAt) < c.healthTTL {
		return c.healthIDs
	}

	pctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	ids, err := c.provider.ListModels(pctx)
	if err != nil {
		c.logger.Warn("model listing failed", "error", err)
		ids = nil
	}

	c.healthIDs = ids
	c.healthAt = time.Now()
	return ids
}

func anyContains(ids []string, model string) bool {
	for _, id := range ids {
		if strings.Contains(id, model) {
			return true
		}
	}
	return false
}

func (c *Classifier) rememberCode(response string) {
	if !LooksLikeCode(response) {
		return
	}
	c.SetLastCode(response)
	c.logger.Debug("code response stored for clipboard")
}

// LastCode returns the most recent generated code, or "".
func (c *Classifier) LastCode() string {
	c.codeMu.Lock()
	defer c.codeMu.Unlock()
	return c.lastCode
}

// SetLastCode stores generated code for later clipboard use.
func (c *Classifier) SetLastCode(code string) {
	c.codeMu.Lock()
	defer c.codeMu.Unlock()
	c.lastCode = code
}

// HasCode reports whether generated code is waiting for clipboard use.
func (c *Classifier) HasCode() bool {
	return c.LastCode() != ""
}
