// Package feed orchestrates the upstream providers behind a per-sport TTL
// cache. Each fetch produces a complete snapshot of a sport's slate; failed
// fetches are cached as failures for the same TTL so a broken upstream is
// not hammered on every request.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// Source produces the current slate for one sport.
type Source interface {
	Scoreboard(ctx context.Context, sport gamestate.Sport) ([]gamestate.Game, error)
}

// Sink receives every fresh snapshot after a successful fetch. Sinks are
// best-effort: a failing sink is logged, never surfaced to the caller.
type Sink interface {
	Store(ctx context.Context, sportID string, games []gamestate.Game) error
}

type cacheEntry struct {
	fetchedAt time.Time
	games     []gamestate.Game
	err       error
}

// Service serves cached snapshots, fetching from the providers on miss.
type Service struct {
	espn   Source
	nhl    Source
	ttl    time.Duration
	sinks  []Sink
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
	clock func() time.Time
}

// New creates a feed service. The NHL source serves professional hockey;
// everything else goes to ESPN.
func New(espn, nhl Source, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		espn:   espn,
		nhl:    nhl,
		ttl:    ttl,
		logger: logger,
		cache:  make(map[string]cacheEntry),
		clock:  time.Now,
	}
}

// AddSink registers a snapshot sink (Redis stream, Postgres archive).
func (s *Service) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

// Scores returns the current slate for every requested sport, keyed by
// sport id. Uncached sports are fetched concurrently. The first fetch error
// is returned after all fetches settle, so one broken upstream doesn't
// discard the rest of the cache fill.
func (s *Service) Scores(ctx context.Context, sports []gamestate.Sport) (map[string][]gamestate.Game, error) {
	results := make(map[string][]gamestate.Game, len(sports))
	var misses []gamestate.Sport

	now := s.clock()
	s.mu.Lock()
	for _, sport := range sports {
		id := SportID(sport)
		entry, ok := s.cache[id]
		if !ok || now.Sub(entry.fetchedAt) >= s.ttl {
			misses = append(misses, sport)
			continue
		}
		if entry.err != nil {
			s.mu.Unlock()
			return nil, entry.err
		}
		results[id] = entry.games
	}
	s.mu.Unlock()

	if len(misses) == 0 {
		return results, nil
	}

	type fetchResult struct {
		id    string
		games []gamestate.Game
		err   error
	}
	fetched := make([]fetchResult, len(misses))
	var wg sync.WaitGroup
	for i, sport := range misses {
		wg.Add(1)
		go func(i int, sport gamestate.Sport) {
			defer wg.Done()
			games, err := s.fetch(ctx, sport)
			fetched[i] = fetchResult{id: SportID(sport), games: games, err: err}
		}(i, sport)
	}
	wg.Wait()

	var firstErr error
	s.mu.Lock()
	for _, fr := range fetched {
		s.cache[fr.id] = cacheEntry{fetchedAt: s.clock(), games: fr.games, err: fr.err}
		if fr.err != nil {
			s.logger.Error("fetch failed", "sport", fr.id, "error", fr.err)
			if firstErr == nil {
				firstErr = fr.err
			}
			continue
		}
		results[fr.id] = fr.games
	}
	s.mu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}

	for _, fr := range fetched {
		s.fanOut(ctx, fr.id, fr.games)
	}
	return results, nil
}

// ScoresFor is the single-sport convenience used by the per-sport routes.
func (s *Service) ScoresFor(ctx context.Context, sport gamestate.Sport) ([]gamestate.Game, error) {
	all, err := s.Scores(ctx, []gamestate.Sport{sport})
	if err != nil {
		return nil, err
	}
	return all[SportID(sport)], nil
}

func (s *Service) fetch(ctx context.Context, sport gamestate.Sport) ([]gamestate.Game, error) {
	if sport.SportType == gamestate.SportHockey && sport.Level == gamestate.LevelProfessional {
		return s.nhl.Scoreboard(ctx, sport)
	}
	return s.espn.Scoreboard(ctx, sport)
}

func (s *Service) fanOut(ctx context.Context, sportID string, games []gamestate.Game) {
	for _, sink := range s.sinks {
		if err := sink.Store(ctx, sportID, games); err != nil {
			s.logger.Error("snapshot sink failed", "sport", sportID, "error", err)
		}
	}
}
