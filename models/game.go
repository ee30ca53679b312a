package models

import "time"

// GenreAll is the catalog value meaning "no genre filter".
const GenreAll = "Todos"

// Genres offered by the catalog genre picker, GenreAll first.
var Genres = []string{GenreAll, "Acción", "Aventura", "RPG", "Puzzle", "Plataformas"}

// Sort keys accepted by the games list.
const (
	SortTitle  = "title"
	SortRating = "rating"
	SortPrice  = "price"
)

// Game is a catalog entry.
type Game struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:real;not null" json:"price"`
	Image       string    `gorm:"type:text;not null" json:"image"`
	Genre       string    `gorm:"type:text;not null;index" json:"genre"`
	Rating      float64   `gorm:"type:real;not null" json:"rating"`
	Platform    Platforms `gorm:"type:text;not null" json:"platform"`
	ReleaseDate string    `gorm:"column:release_date;type:text;not null" json:"releaseDate"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Game) TableName() string { return "games" }

// GameRequest is the create and update payload. Update is a full replace,
// so both operations require every field.
type GameRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Image       string    `json:"image" validate:"required"`
	Genre       string    `json:"genre" validate:"required"`
	Rating      float64   `json:"rating" validate:"required,gt=0,lte=5"`
	Platform    Platforms `json:"platform" validate:"required,min=1,platforms"`
	ReleaseDate string    `json:"releaseDate" validate:"required,isodate"`
}

// Apply copies the request fields onto g, leaving the id untouched.
func (r *GameRequest) Apply(g *Game) {
	g.Title = r.Title
	g.Description = r.Description
	g.Price = r.Price
	g.Image = r.Image
	g.Genre = r.Genre
	g.Rating = r.Rating
	g.Platform = append(Platforms{}, r.Platform...)
	g.ReleaseDate = r.ReleaseDate
}

// ListGamesQuery holds the games list filters.
type ListGamesQuery struct {
	Search string `form:"search"`
	Genre  string `form:"genre"`
	Sort   string `form:"sort"`
}

// FiltersGenre reports whether the genre filter is active.
func (q ListGamesQuery) FiltersGenre() bool {
	return q.Genre != "" && q.Genre != GenreAll
}

// SortKey returns the effective sort, falling back to title.
func (q ListGamesQuery) SortKey() string {
	switch q.Sort {
	case SortRating, SortPrice:
		return q.Sort
	default:
		return SortTitle
	}
}

// GameEvent is published to SNS after a catalog write.
type GameEvent struct {
	EventType string    `json:"event_type"`
	GameID    string    `json:"game_id"`
	Title     string    `json:"title,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventGameCreated    = "game_created"
	EventGameUpdated    = "game_updated"
	EventGameDeleted    = "game_deleted"
	EventUserRegistered = "user_registered"
)
