// Package pipeline assembles the conversion engine: parse, resolve,
// rewrite, render. An Engine is safe for concurrent use; converted
// queries are cached by query text and requested output aliases.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/sqlshift/sqlshift/catalog"
	"github.com/sqlshift/sqlshift/cfg"
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
	"github.com/sqlshift/sqlshift/parser"
	"github.com/sqlshift/sqlshift/render"
	"github.com/sqlshift/sqlshift/telemetry"
	"github.com/sqlshift/sqlshift/transform"
	"github.com/sqlshift/sqlshift/typing"
)

// Options configures an Engine. The zero value is usable; unset fields
// fall back to built-in defaults.
type Options struct {
	CacheSize  int
	Transports []cfg.TransportConfiguration
	Renames    []cfg.RenameConfiguration
	Denylist   []string // extra UDF classes that fail conversion outright
}

// Conversion is the result of translating one query.
type Conversion struct {
	SQL       string
	Records   []transform.UDFRecord
	Rules     []string // rule names that fired, in order
	WasCached bool
}

// Engine converts source-dialect queries to the target dialect.
type Engine struct {
	parser   *parser.Parser
	resolver *function.Resolver
	dynamic  *function.DynamicRegistry
	deriver  *typing.Deriver

	transports map[string]transform.TransportTarget
	renames    map[string]string
	denylist   []string

	cache *lru.Cache[string, *Conversion]
}

// NewEngine builds an engine over the given catalog.
func NewEngine(cat catalog.Catalog, opts Options) (*Engine, error) {
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = cfg.Config.Engine.CacheSize
	}
	cache, err := lru.New[string, *Conversion](cacheSize)
	if err != nil {
		return nil, err
	}

	dynamic := function.NewDynamicRegistry()
	resolver := function.NewResolver(function.NewBuiltinRegistry(), dynamic)
	p, err := parser.New(resolver, cat)
	if err != nil {
		return nil, err
	}

	transports := make(map[string]transform.TransportTarget, len(opts.Transports))
	for _, t := range opts.Transports {
		transports[t.From] = transform.TransportTarget{Class: t.To, Coordinates: t.Coordinates}
	}
	renames := make(map[string]string, len(opts.Renames))
	for _, r := range opts.Renames {
		renames[r.From] = r.To
	}

	return &Engine{
		parser:     p,
		resolver:   resolver,
		dynamic:    dynamic,
		deriver:    typing.NewDeriver(cat),
		transports: transports,
		renames:    renames,
		denylist:   opts.Denylist,
		cache:      cache,
	}, nil
}

// Resolver exposes the engine's name resolver, for callers that build IR
// directly instead of going through SQL text.
func (e *Engine) Resolver() *function.Resolver { return e.resolver }

// DynamicFunctionCount returns the number of operators synthesized from
// catalog function declarations so far.
func (e *Engine) DynamicFunctionCount() int { return e.dynamic.Len() }

// CachedConversions returns the number of entries in the converted-query
// cache.
func (e *Engine) CachedConversions() int { return e.cache.Len() }

// Convert translates one SELECT statement. aliases, when non-nil, are
// re-attached as the outermost projection's column names and must match
// its width.
func (e *Engine) Convert(sql string, aliases []string) (*Conversion, error) {
	key := cacheKey(sql, aliases)
	if cached, ok := e.cache.Get(key); ok {
		telemetry.CacheHitsTotal.Inc()
		hit := *cached
		hit.WasCached = true
		return &hit, nil
	}
	telemetry.CacheMissesTotal.Inc()

	start := time.Now()
	root, err := e.parser.Parse(sql)
	if err != nil {
		telemetry.ConversionsTotal.With("failed").Inc()
		return nil, err
	}

	result, err := e.ConvertTree(root, aliases)
	if err != nil {
		return nil, err
	}
	telemetry.ConversionDurationSeconds.Observe(time.Since(start).Seconds())

	e.cache.Add(key, result)
	telemetry.DynamicFunctionsRegistered.Set(float64(e.dynamic.Len()))
	return result, nil
}

// ConvertTree rewrites and renders an already-bound tree. The tree is
// mutated in place. Rule instances carry per-conversion state, so every
// call builds a fresh chain.
func (e *Engine) ConvertTree(root ir.Node, aliases []string) (*Conversion, error) {
	chain := transform.NewChain(
		transform.NewOneBasedIndexRule(),
		transform.NewRelationalCastRule(),
		transform.NewConcatCastRule(),
		transform.NewRedundantCastInCaseRule(),
		transform.NewFromUnixtimeRule(),
		transform.NewNativeUDFRule(),
		transform.NewTransportRule(e.transports),
		transform.NewOperatorRenameRule(e.renames),
		transform.NewFallbackRule(e.denylist),
		transform.NewExplicitAliasRule(aliases),
	)
	ctx := transform.NewContext(e.deriver, nil)
	walker := transform.NewWalker(chain, ctx)

	rewritten, err := walker.Rewrite(root)
	if err != nil {
		var unsupported *transform.UnsupportedUDFError
		if errors.As(err, &unsupported) {
			telemetry.ConversionsTotal.With("unsupported").Inc()
		} else {
			telemetry.ConversionsTotal.With("failed").Inc()
		}
		return nil, err
	}

	applied := ctx.AppliedRules()
	for _, name := range applied {
		telemetry.RuleApplicationsTotal.With(name).Inc()
	}
	records := ctx.Report().Records()
	for _, rec := range records {
		switch rec.Kind {
		case transform.RecordTransported:
			telemetry.TransportedUDFsTotal.Inc()
		case transform.RecordFallback:
			telemetry.FallbackUDFsTotal.Inc()
		}
	}
	telemetry.ConversionsTotal.With("success").Inc()

	out := render.Render(rewritten)
	log.Debug().Int("rules_fired", len(applied)).Int("udf_records", len(records)).
		Msg("conversion complete")

	return &Conversion{SQL: out, Records: records, Rules: applied}, nil
}

func cacheKey(sql string, aliases []string) string {
	h := sha256.New()
	h.Write([]byte(sql))
	if aliases != nil {
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(aliases, "\x00")))
	}
	return hex.EncodeToString(h.Sum(nil))
}
