package repository_test

import (
	"context"
	"testing"

	"github.com/KingGimer44/VideoJuego/database"
	"github.com/KingGimer44/VideoJuego/models"
	"github.com/KingGimer44/VideoJuego/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupSeededDB opens an in-memory store holding the sample catalog.
func setupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	_, err = database.SeedGames(context.Background(), db, zap.NewNop())
	require.NoError(t, err)
	return db
}

func titles(games []models.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}

func TestSQLite_ListByRating(t *testing.T) {
	repo := repository.NewGormGameRepository(setupSeededDB(t))

	games, err := repo.List(context.Background(), models.ListGamesQuery{Sort: models.SortRating})
	require.NoError(t, err)
	require.Len(t, games, 6)
	assert.ElementsMatch(t, []string{"Red Dead Redemption 2", "The Witcher 3"}, titles(games[:2]))
	for i := 1; i < len(games); i++ {
		assert.GreaterOrEqual(t, games[i-1].Rating, games[i].Rating)
	}
}

func TestSQLite_ListByPriceAndTitle(t *testing.T) {
	repo := repository.NewGormGameRepository(setupSeededDB(t))

	byPrice, err := repo.List(context.Background(), models.ListGamesQuery{Sort: models.SortPrice})
	require.NoError(t, err)
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].Price, byPrice[i].Price)
	}

	byTitle, err := repo.List(context.Background(), models.ListGamesQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hades", "Hollow Knight", "Portal 2", "Red Dead Redemption 2", "Super Mario Odyssey", "The Witcher 3"}, titles(byTitle))
}

func TestSQLite_ListSearchAndGenre(t *testing.T) {
	repo := repository.NewGormGameRepository(setupSeededDB(t))
	ctx := context.Background()

	games, err := repo.List(ctx, models.ListGamesQuery{Search: "PUZZLE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Portal 2"}, titles(games))

	games, err = repo.List(ctx, models.ListGamesQuery{Search: "h", Genre: "Acción"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hades"}, titles(games))

	games, err = repo.List(ctx, models.ListGamesQuery{Genre: models.GenreAll})
	require.NoError(t, err)
	assert.Len(t, games, 6)

	games, err = repo.List(ctx, models.ListGamesQuery{Search: "_"})
	require.NoError(t, err)
	assert.Empty(t, games, "underscore must match literally")
}

func TestSQLite_ListSearchFoldsNonASCII(t *testing.T) {
	repo := repository.NewGormGameRepository(setupSeededDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Game{
		ID:          "7",
		Title:       "ÉPICA ÑANDÚ",
		Description: "Aventura",
		Price:       9.99,
		Genre:       "Aventura",
		Rating:      4.0,
		Platform:    models.Platforms{"PC"},
		ReleaseDate: "2020-01-01",
	}))

	games, err := repo.List(ctx, models.ListGamesQuery{Search: "épica"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ÉPICA ÑANDÚ"}, titles(games))

	games, err = repo.List(ctx, models.ListGamesQuery{Search: "ñandú"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ÉPICA ÑANDÚ"}, titles(games))

	games, err = repo.List(ctx, models.ListGamesQuery{Search: "ACCIÓN", Sort: models.SortRating})
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Dead Redemption 2", "Hades"}, titles(games))
}

func TestSQLite_CreateGetUpdateDelete(t *testing.T) {
	repo := repository.NewGormGameRepository(setupSeededDB(t))
	ctx := context.Background()

	game := &models.Game{
		ID: "celeste", Title: "Celeste", Description: "Escalada", Price: 19.99,
		Image: "https://example.com/celeste.jpg", Genre: "Plataformas", Rating: 4.7,
		Platform: models.Platforms{"PC", "Nintendo Switch"}, ReleaseDate: "2018-01-25",
	}
	require.NoError(t, repo.Create(ctx, game))

	got, err := repo.FindByID(ctx, "celeste")
	require.NoError(t, err)
	assert.Equal(t, game.Platform, got.Platform)
	assert.Equal(t, game.Price, got.Price)

	game.Price = 9.99
	game.Platform = models.Platforms{"Xbox"}
	require.NoError(t, repo.Update(ctx, game))
	got, err = repo.FindByID(ctx, "celeste")
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, models.Platforms{"Xbox"}, got.Platform)

	assert.ErrorIs(t, repo.Update(ctx, &models.Game{ID: "nope", Title: "x"}), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "celeste"))
	assert.ErrorIs(t, repo.Delete(ctx, "celeste"), repository.ErrNotFound)
	_, err = repo.FindByID(ctx, "celeste")
	assert.True(t, repository.IsNotFound(err))
}

func TestSQLite_UserEmailUnique(t *testing.T) {
	repo := repository.NewGormUserRepository(setupSeededDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Name: "Ana", Email: "a@x.com", PasswordHash: "secret1"}))

	err := repo.Create(ctx, &models.User{ID: "u2", Name: "Otra", Email: "a@x.com", PasswordHash: "other"})
	require.Error(t, err)
	assert.True(t, repository.IsDuplicate(err))

	u, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "secret1", u.PasswordHash, "duplicate insert must not overwrite")

	exists, err := repo.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	byID, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)
}
