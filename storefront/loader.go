package storefront

import (
	"context"
	"sync"

	"github.com/KingGimer44/VideoJuego/models"

	"go.uber.org/zap"
)

// GameLister fetches the full catalog.
type GameLister interface {
	ListGames(ctx context.Context, q models.ListGamesQuery) ([]models.Game, error)
}

// CatalogLoader holds the fetched catalog. Each fetch takes a generation
// number and only the newest generation may store its result, so a slow
// earlier fetch never overwrites a later one.
type CatalogLoader struct {
	source GameLister
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	games      []models.Game
	loaded     bool
	loading    bool
	refreshing bool
	err        error
}

// NewCatalogLoader creates a loader. logger may be nil.
func NewCatalogLoader(source GameLister, logger *zap.Logger) *CatalogLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogLoader{source: source, logger: logger}
}

// Load performs the initial fetch, with Loading set until it resolves.
func (l *CatalogLoader) Load(ctx context.Context) error {
	return l.fetch(ctx, false)
}

// Refresh refetches with Refreshing set, keeping the current games visible.
func (l *CatalogLoader) Refresh(ctx context.Context) error {
	return l.fetch(ctx, true)
}

func (l *CatalogLoader) fetch(ctx context.Context, refresh bool) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	if refresh {
		l.refreshing = true
	} else {
		l.loading = true
	}
	l.mu.Unlock()

	games, err := l.source.ListGames(ctx, models.ListGamesQuery{})

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		l.logger.Debug("Discarding stale catalog response", zap.Uint64("generation", gen))
		return err
	}
	l.loading = false
	l.refreshing = false
	l.err = err
	if err != nil {
		l.logger.Warn("Catalog fetch failed", zap.Error(err))
		return err
	}
	l.games = games
	l.loaded = true
	return nil
}

// Loading reports whether the first fetch is still in flight.
func (l *CatalogLoader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *CatalogLoader) Refreshing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refreshing
}

// Err is the error of the newest completed fetch.
func (l *CatalogLoader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Games returns a copy of the unfiltered catalog.
func (l *CatalogLoader) Games() []models.Game {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Game(nil), l.games...)
}

// View runs the filter and sort pipeline over the current catalog.
func (l *CatalogLoader) View(q models.ListGamesQuery) []models.Game {
	return FilterAndSort(l.Games(), q)
}
