package repository

import (
	"context"
	"strings"

	"github.com/KingGimer44/VideoJuego/models"

	"gorm.io/gorm"
)

// GameRepository defines the interface for game data access.
type GameRepository interface {
	List(ctx context.Context, q models.ListGamesQuery) ([]models.Game, error)
	FindByID(ctx context.Context, id string) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id string) error
}

// GormGameRepository implements GameRepository using GORM.
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GormGameRepository.
func NewGormGameRepository(db *gorm.DB) GameRepository {
	return &GormGameRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// matchesSearch reports whether title or genre contains search, folding
// case over the full Unicode range.
func matchesSearch(g models.Game, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(g.Title), search) ||
		strings.Contains(strings.ToLower(g.Genre), search)
}

// List returns games filtered by search and genre, ordered by the query's
// sort key with id as tie-breaker.
//
// SQLite's LOWER only folds ASCII, so on that dialect the search filter
// runs in Go over the ordered rows.
func (r *GormGameRepository) List(ctx context.Context, q models.ListGamesQuery) ([]models.Game, error) {
	query := r.db.WithContext(ctx).Model(&models.Game{})

	search := strings.TrimSpace(q.Search)
	foldInGo := search != "" && r.db.Dialector.Name() == "sqlite"
	if search != "" && !foldInGo {
		pattern := containsPattern(search)
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(genre) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if q.FiltersGenre() {
		query = query.Where("genre = ?", q.Genre)
	}

	switch q.SortKey() {
	case models.SortRating:
		query = query.Order("rating DESC")
	case models.SortPrice:
		query = query.Order("price ASC")
	default:
		query = query.Order("title ASC")
	}

	games := []models.Game{}
	if err := query.Order("id ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	if foldInGo {
		matched := games[:0]
		for _, g := range games {
			if matchesSearch(g, search) {
				matched = append(matched, g)
			}
		}
		games = matched
	}
	return games, nil
}

// FindByID retrieves a game by id.
func (r *GormGameRepository) FindByID(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// Create inserts a new game.
func (r *GormGameRepository) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// Update replaces every editable column of an existing game. It returns
// ErrNotFound when no row has the game's id.
func (r *GormGameRepository) Update(ctx context.Context, game *models.Game) error {
	result := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", game.ID).
		Select("title", "description", "price", "image", "genre", "rating", "platform", "release_date", "updated_at").
		Updates(game)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a game. It returns ErrNotFound when no row matched.
func (r *GormGameRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Game{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
