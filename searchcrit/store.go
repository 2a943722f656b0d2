package searchcrit

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/nonibytes/searchcrit/searchcrit/ops"
	"github.com/nonibytes/searchcrit/searchcrit/registry"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/storage"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

// Options configures a Store
type Options struct {
	Logger zerolog.Logger
}

// DefaultOptions returns options with logging disabled
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

// Store runs search queries compiled by its registry against one database
type Store struct {
	adapter  storage.Adapter
	db       *sqlx.DB
	registry *registry.Registry
	log      zerolog.Logger
}

// Open connects through adapter. Search configs are added with Register.
func Open(ctx context.Context, adapter storage.Adapter, opts Options) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, err
	}
	log := opts.Logger.With().
		Str("backend", string(adapter.Backend())).
		Str("db", adapter.Name()).
		Logger()
	log.Debug().Msg("store opened")

	return &Store{
		adapter:  adapter,
		db:       db,
		registry: registry.New(log),
		log:      log,
	}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return s.adapter.Close()
}

// DB exposes the connection for schema setup and seeding
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Dialect() sqlbuilder.Dialect { return s.adapter.Dialect() }

// Registry returns the search configs of the store
func (s *Store) Registry() *registry.Registry { return s.registry }

// Register adds a search config for entity
func (s *Store) Register(entity string, cfg registry.Config) {
	s.registry.Register(entity, cfg)
}

// Compile turns a search query for entity into a SELECT
func (s *Store) Compile(entity, text string) (*sqlexpr.Select, error) {
	return s.registry.Compile(entity, text)
}

func (s *Store) prepare(entity, text string) (*sqlexpr.Select, sqlexpr.Column, error) {
	cfg, err := s.registry.Lookup(entity)
	if err != nil {
		return nil, sqlexpr.Column{}, err
	}
	q, err := s.registry.Compile(entity, text)
	if err != nil {
		return nil, sqlexpr.Column{}, err
	}
	return q, cfg.ID, nil
}

// Explain renders the SQL Search would run
func (s *Store) Explain(entity, text string) (ops.Explained, error) {
	q, id, err := s.prepare(entity, text)
	if err != nil {
		return ops.Explained{}, err
	}
	return ops.Explain(s.Dialect(), q, id), nil
}

// Search returns the ids of every entity row matching text, in id order
func (s *Store) Search(ctx context.Context, entity, text string) ([]int64, error) {
	q, id, err := s.prepare(entity, text)
	if err != nil {
		return nil, err
	}
	ids, err := ops.IDs(ctx, s.db, s.Dialect(), q, id)
	if err != nil {
		s.log.Error().Err(err).Str("entity", entity).Str("query", text).Msg("search failed")
		return nil, err
	}
	s.log.Debug().Str("entity", entity).Str("query", text).Int("results", len(ids)).Msg("search")
	return ids, nil
}

// Count returns how many entity rows match text
func (s *Store) Count(ctx context.Context, entity, text string) (int64, error) {
	q, id, err := s.prepare(entity, text)
	if err != nil {
		return 0, err
	}
	n, err := ops.Count(ctx, s.db, s.Dialect(), q, id)
	if err != nil {
		s.log.Error().Err(err).Str("entity", entity).Str("query", text).Msg("count failed")
		return 0, err
	}
	return n, nil
}

// Stats summarizes col over the rows matching text
func (s *Store) Stats(ctx context.Context, entity, text string, col sqlexpr.Column) (*ops.StatsResult, error) {
	q, _, err := s.prepare(entity, text)
	if err != nil {
		return nil, err
	}
	return ops.Stats(ctx, s.db, s.Dialect(), q, col)
}

// Optimize refreshes planner statistics
func (s *Store) Optimize(ctx context.Context) error {
	return s.adapter.Optimize(ctx, s.db)
}
