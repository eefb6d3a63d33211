package slots

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Engine produces reservation time suggestions.  With a nil Generator it
// always answers with the fallback list.
type Engine struct {
	gen      Generator
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache stores live suggestions in c for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(e *Engine) { e.cache, e.cacheTTL = c, ttl }
}

// WithTimeout bounds a single generation call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets where generation failures are reported.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an engine over gen.  A nil gen, including a nil
// *GeminiClient, selects fallback mode.
func NewEngine(gen Generator, opts ...Option) *Engine {
	if g, ok := gen.(*GeminiClient); ok && g == nil {
		gen = nil
	}
	e := &Engine{gen: gen, log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Live reports whether a generation capability is configured.
func (e *Engine) Live() bool { return e.gen != nil }

// Suggest returns candidate times for date and partySize.  It never fails:
// any generation, timeout or parse error yields Fallback().
func (e *Engine) Suggest(ctx context.Context, date time.Time, partySize int) []string {
	if e.gen == nil {
		return Fallback()
	}
	key := cacheKey(date, partySize)
	log := e.log.With().Str("date", date.Format("2006-01-02")).Int("party_size", partySize).Logger()

	if e.cache != nil {
		times, ok, err := e.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("slot cache read failed")
		case ok:
			log.Debug().Msg("slot cache hit")
			return times
		}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	raw, err := e.gen.Generate(ctx, BuildPrompt(date, partySize))
	if err != nil {
		log.Warn().Err(err).Msg("slot generation failed, using fallback")
		return Fallback()
	}
	times, err := ParseSlots(raw)
	if err != nil {
		log.Warn().Err(err).Msg("unusable slot reply, using fallback")
		return Fallback()
	}

	if e.cache != nil {
		if err := e.cache.Set(context.WithoutCancel(ctx), key, times, e.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("slot cache write failed")
		}
	}
	return times
}
