// Package registry maps the named tokens of a search query to filters and
// compiles whole queries for an entity.
package registry

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/filter"
	"github.com/nonibytes/searchcrit/searchcrit/query"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
)

// Config describes how one entity is searched
type Config struct {
	// ID is the column search results are reported by
	ID sqlexpr.Column
	// Base returns the unfiltered query
	Base func() *sqlexpr.Select
	// Named maps token names to filters. Several names may share a filter.
	Named map[string]filter.Filter
	// Anonymous handles tokens without a name; nil rejects them
	Anonymous filter.Filter
}

// Registry holds search configs by entity name
type Registry struct {
	mu      sync.RWMutex
	configs map[string]Config
	log     zerolog.Logger
}

func New(log zerolog.Logger) *Registry {
	return &Registry{
		configs: make(map[string]Config),
		log:     log.With().Str("component", "registry").Logger(),
	}
}

// Register adds or replaces the config for entity. Names are stored in lower
// case; a config without Base or ID panics.
func (r *Registry) Register(entity string, cfg Config) {
	if cfg.Base == nil {
		panic("registry: config for " + entity + " has no base query")
	}
	if cfg.ID.Name == "" {
		panic("registry: config for " + entity + " has no id column")
	}
	named := make(map[string]filter.Filter, len(cfg.Named))
	for name, f := range cfg.Named {
		named[strings.ToLower(name)] = f
	}
	cfg.Named = named

	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[entity] = cfg
}

// Entities lists registered entity names in sorted order
func (r *Registry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.configs))
}

// Names lists the named tokens of entity in sorted order
func (r *Registry) Names(entity string) ([]string, error) {
	cfg, err := r.Lookup(entity)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(cfg.Named)), nil
}

// Lookup returns the config registered for entity
func (r *Registry) Lookup(entity string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[entity]
	if !ok {
		return Config{}, scerrors.New(scerrors.ErrConfig, "unknown entity: "+entity)
	}
	return cfg, nil
}

// Compile parses text and applies every token to the entity's base query
func (r *Registry) Compile(entity, text string) (*sqlexpr.Select, error) {
	tokens, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	return r.CompileTokens(entity, tokens)
}

// CompileTokens applies already parsed tokens to the entity's base query
func (r *Registry) CompileTokens(entity string, tokens []query.Token) (*sqlexpr.Select, error) {
	cfg, err := r.Lookup(entity)
	if err != nil {
		return nil, err
	}

	q := cfg.Base()
	for _, tok := range tokens {
		f, err := cfg.lookup(tok)
		if err != nil {
			return nil, err
		}
		q, err = f.Apply(q, tok.Criterion, tok.Negated)
		if err != nil {
			r.log.Debug().Err(err).Str("entity", entity).Stringer("token", tok).Msg("token rejected")
			return nil, err
		}
	}

	r.log.Debug().
		Str("entity", entity).
		Int("tokens", len(tokens)).
		Msg("compiled search query")
	return q, nil
}

func (cfg Config) lookup(tok query.Token) (filter.Filter, error) {
	if tok.Name == "" {
		if cfg.Anonymous == nil {
			return nil, scerrors.New(scerrors.ErrUnknownField, "anonymous tokens are not supported here")
		}
		return cfg.Anonymous, nil
	}
	f, ok := cfg.Named[tok.Name]
	if !ok {
		err := scerrors.UnknownFieldError(tok.Name)
		err.Accepted = slices.Sorted(maps.Keys(cfg.Named))
		return nil, err
	}
	return f, nil
}
