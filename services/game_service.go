package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/models"
	awspkg "github.com/KingGimer44/VideoJuego/pkg/aws"
	"github.com/KingGimer44/VideoJuego/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgGameIDRequired  = "ID de juego requerido"
	MsgGameNotFound    = "Juego no encontrado"
	MsgGameFieldsReq   = "Todos los campos son requeridos"
	MsgGameDeleted     = "Juego eliminado correctamente"
	MsgInvalidPlatform = "Las plataformas no pueden contener comas"
)

// GameService defines the catalog business logic.
type GameService interface {
	ListGames(ctx context.Context, q models.ListGamesQuery) ([]models.Game, *apperrors.Error)
	GetGame(ctx context.Context, id string) (*models.Game, *apperrors.Error)
	CreateGame(ctx context.Context, req *models.GameRequest) (*models.Game, *apperrors.Error)
	UpdateGame(ctx context.Context, id string, req *models.GameRequest) (*models.Game, *apperrors.Error)
	DeleteGame(ctx context.Context, id string) *apperrors.Error
}

type gameServiceImpl struct {
	repo    repository.GameRepository
	cache   GameCache
	events  *EventPublisher
	metrics MetricsRecorder
	logger  *zap.Logger
	newID   func() string
}

// NewGameService creates a GameService. cache, events and metrics may be nil.
func NewGameService(
	repo repository.GameRepository,
	cache GameCache,
	events *EventPublisher,
	metrics MetricsRecorder,
	logger *zap.Logger,
) GameService {
	if cache == nil {
		cache = NoopGameCache{}
	}
	return &gameServiceImpl{
		repo:    repo,
		cache:   cache,
		events:  events,
		metrics: metrics,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// ListGames returns the filtered and sorted catalog.
func (s *gameServiceImpl) ListGames(ctx context.Context, q models.ListGamesQuery) ([]models.Game, *apperrors.Error) {
	games, version, ok := s.cache.GetList(ctx, q)
	if ok {
		recordAsync(s.metrics, awspkg.MetricCacheHits)
		return games, nil
	}
	recordAsync(s.metrics, awspkg.MetricCacheMisses)

	games, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("Failed to list games", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.cache.SetList(ctx, version, q, games)
	return games, nil
}

// GetGame returns one game by id.
func (s *gameServiceImpl) GetGame(ctx context.Context, id string) (*models.Game, *apperrors.Error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgGameIDRequired)
	}

	cached, version, ok := s.cache.GetGame(ctx, id)
	if ok {
		return cached, nil
	}

	game, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgGameNotFound)
		}
		s.logger.Error("Failed to get game", zap.String("game_id", id), zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.cache.SetGame(ctx, version, game)
	return game, nil
}

// CreateGame stores a new game under a fresh UUID.
func (s *gameServiceImpl) CreateGame(ctx context.Context, req *models.GameRequest) (*models.Game, *apperrors.Error) {
	if appErr := checkGameRequest(req); appErr != nil {
		return nil, appErr
	}

	game := &models.Game{ID: s.newID()}
	req.Apply(game)

	if err := s.repo.Create(ctx, game); err != nil {
		s.logger.Error("Failed to create game", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.cache.Invalidate(ctx, "")
	s.events.Publish(ctx, models.EventGameCreated, newGameEvent(models.EventGameCreated, game))
	recordAsync(s.metrics, awspkg.MetricGamesCreated)

	s.logger.Info("Game created", zap.String("game_id", game.ID), zap.String("title", game.Title))
	return game, nil
}

// UpdateGame replaces every field of an existing game.
func (s *gameServiceImpl) UpdateGame(ctx context.Context, id string, req *models.GameRequest) (*models.Game, *apperrors.Error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation(MsgGameIDRequired)
	}
	if appErr := checkGameRequest(req); appErr != nil {
		return nil, appErr
	}

	game := &models.Game{ID: id}
	req.Apply(game)

	if err := s.repo.Update(ctx, game); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgGameNotFound)
		}
		s.logger.Error("Failed to update game", zap.String("game_id", id), zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.cache.Invalidate(ctx, id)
	s.events.Publish(ctx, models.EventGameUpdated, newGameEvent(models.EventGameUpdated, game))
	recordAsync(s.metrics, awspkg.MetricGamesUpdated)

	s.logger.Info("Game updated", zap.String("game_id", id))
	return game, nil
}

// DeleteGame removes a game. Deleting an unknown id is a 404.
func (s *gameServiceImpl) DeleteGame(ctx context.Context, id string) *apperrors.Error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.Validation(MsgGameIDRequired)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.NotFound(MsgGameNotFound)
		}
		s.logger.Error("Failed to delete game", zap.String("game_id", id), zap.Error(err))
		return apperrors.Internal(err)
	}

	s.cache.Invalidate(ctx, id)
	s.events.Publish(ctx, models.EventGameDeleted, models.GameEvent{
		EventType: models.EventGameDeleted,
		GameID:    id,
		Timestamp: time.Now().UTC(),
	})
	recordAsync(s.metrics, awspkg.MetricGamesDeleted)

	s.logger.Info("Game deleted", zap.String("game_id", id))
	return nil
}

// checkGameRequest repeats the required-field rule for callers that bypass
// the HTTP validator.
func checkGameRequest(req *models.GameRequest) *apperrors.Error {
	if req == nil ||
		strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		req.Price <= 0 ||
		strings.TrimSpace(req.Image) == "" ||
		strings.TrimSpace(req.Genre) == "" ||
		req.Rating <= 0 ||
		len(req.Platform) == 0 ||
		strings.TrimSpace(req.ReleaseDate) == "" {
		return apperrors.Validation(MsgGameFieldsReq)
	}
	if !req.Platform.RoundTrips() {
		return apperrors.Validation(MsgInvalidPlatform)
	}
	return nil
}

func newGameEvent(eventType string, g *models.Game) models.GameEvent {
	return models.GameEvent{
		EventType: eventType,
		GameID:    g.ID,
		Title:     g.Title,
		Genre:     g.Genre,
		Price:     g.Price,
		Timestamp: time.Now().UTC(),
	}
}
