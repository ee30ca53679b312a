package database

import (
	"context"
	"fmt"

	"github.com/KingGimer44/VideoJuego/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates or updates the users and games tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Game{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// SeedGames inserts the sample catalog when the games table is empty.
// It reports how many rows were inserted.
func SeedGames(ctx context.Context, db *gorm.DB, logger *zap.Logger) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Game{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	games := SampleGames()
	if err := db.WithContext(ctx).Create(&games).Error; err != nil {
		return 0, fmt.Errorf("seed games: %w", err)
	}

	logger.Info("Seeded sample games", zap.Int("count", len(games)))
	return len(games), nil
}

// SampleGames returns a fresh copy of the seed catalog.
func SampleGames() []models.Game {
	return []models.Game{
		{
			ID:          "1",
			Title:       "Hollow Knight",
			Description: "Hollow Knight es un juego de aventuras y plataformas en 2D que tiene lugar en Hallownest, un reino subterráneo en ruinas. Explora cavernas serpenteantes, ciudades antiguas y páramos mortíferos. Lucha contra criaturas corrompidas, entabla amistad con extraños insectos y resuelve los antiguos misterios que se ocultan en el corazón del reino.",
			Price:       15.99,
			Image:       "https://images.igdb.com/igdb/image/upload/t_cover_big/co1rgi.jpg",
			Genre:       "Aventura",
			Rating:      4.8,
			Platform:    models.Platforms{"PC", "Nintendo Switch", "PlayStation", "Xbox"},
			ReleaseDate: "2017-02-24",
		},
		{
			ID:          "2",
			Title:       "Red Dead Redemption 2",
			Description: "Red Dead Redemption 2 es un videojuego de acción-aventura western desarrollado por Rockstar Games. La historia se centra en Arthur Morgan, un forajido miembro de la banda de Dutch van der Linde en 1899.",
			Price:       59.99,
			Image:       "https://images.igdb.com/igdb/image/upload/t_cover_big/co1q1f.jpg",
			Genre:       "Acción",
			Rating:      4.9,
			Platform:    models.Platforms{"PC", "PlayStation", "Xbox"},
			ReleaseDate: "2018-10-26",
		},
		{
			ID:          "3",
			Title:       "Portal 2",
			Description: "Portal 2 es un videojuego de lógica en primera persona desarrollado por Valve Corporation. Es la secuela de Portal y fue lanzado en abril de 2011.",
			Price:       19.99,
			Image:       "https://images.igdb.com/igdb/image/upload/t_cover_big/co2icx.jpg",
			Genre:       "Puzzle",
			Rating:      4.7,
			Platform:    models.Platforms{"PC", "PlayStation", "Xbox"},
			ReleaseDate: "2011-04-19",
		},
		{
			ID:          "4",
			Title:       "Hades",
			Description: "Hades es un videojuego de acción roguelike desarrollado y publicado por Supergiant Games. Juegas como Zagreus, el príncipe del inframundo.",
			Price:       24.99,
			Image:       "https://images.igdb.com/igdb/image/upload/t_cover_big/co2145.jpg",
			Genre:       "Acción",
			Rating:      4.6,
			Platform:    models.Platforms{"PC", "Nintendo Switch", "PlayStation", "Xbox"},
			ReleaseDate: "2020-09-17",
		},
		{
			ID:          "5",
			Title:       "Super Mario Odyssey",
			Description: "Super Mario Odyssey es un videojuego de plataformas desarrollado por Nintendo EPD y publicado por Nintendo para Nintendo Switch.",
			Price:       49.99,
			Image:       "https://images.igdb.com/igdb/image/upload/t_cover_big/co1nxb.jpg",
			Genre:       "Plataformas",
			Rating:      4.8,
			Platform:    models.Platforms{"Nintendo Switch"},
			ReleaseDate: "2017-10-27",
		},
		{
			ID:          "6",
			Title:       "The Witcher 3",
			Description: "The Witcher 3: Wild Hunt es un videojuego de rol desarrollado y publicado por CD Projekt RED.",
			Price:       39.99,
			Image:       "https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg",
			Genre:       "RPG",
			Rating:      4.9,
			Platform:    models.Platforms{"PC", "PlayStation", "Xbox", "Nintendo Switch"},
			ReleaseDate: "2015-05-19",
		},
	}
}
