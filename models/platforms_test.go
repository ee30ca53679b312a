package models_test

import (
	"encoding/json"
	"testing"

	"github.com/KingGimer44/VideoJuego/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatforms_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Platforms
	}{
		{"array", `["PC","Nintendo Switch"]`, models.Platforms{"PC", "Nintendo Switch"}},
		{"comma string", `"PC, PlayStation,Xbox"`, models.Platforms{"PC", "PlayStation", "Xbox"}},
		{"single", `"Nintendo Switch"`, models.Platforms{"Nintendo Switch"}},
		{"empty string", `""`, models.Platforms{}},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p models.Platforms
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPlatforms_UnmarshalJSON_RejectsOtherShapes(t *testing.T) {
	var p models.Platforms
	assert.Error(t, json.Unmarshal([]byte(`42`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &p))
}

func TestPlatforms_StorageRoundTrip(t *testing.T) {
	in := models.Platforms{"PC", "Nintendo Switch", "PlayStation", "Xbox"}
	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, "PC,Nintendo Switch,PlayStation,Xbox", v)

	var out models.Platforms
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan([]byte("Nintendo Switch")))
	assert.Equal(t, models.Platforms{"Nintendo Switch"}, out)

	assert.Error(t, out.Scan(3.5))
}

func TestPlatforms_MarshalJSONNeverNull(t *testing.T) {
	b, err := json.Marshal(struct {
		Platform models.Platforms `json:"platform"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"platform":[]}`, string(b))
}

func TestPlatforms_RoundTrips(t *testing.T) {
	assert.True(t, models.Platforms{"PC", "Xbox"}.RoundTrips())
	assert.False(t, models.Platforms{"PC,Mac"}.RoundTrips())
	assert.False(t, models.Platforms{" PC"}.RoundTrips())
	assert.False(t, models.Platforms{""}.RoundTrips())
}

func TestListGamesQuery(t *testing.T) {
	assert.False(t, models.ListGamesQuery{Genre: models.GenreAll}.FiltersGenre())
	assert.False(t, models.ListGamesQuery{}.FiltersGenre())
	assert.True(t, models.ListGamesQuery{Genre: "RPG"}.FiltersGenre())

	assert.Equal(t, models.SortTitle, models.ListGamesQuery{Sort: "popularity"}.SortKey())
	assert.Equal(t, models.SortRating, models.ListGamesQuery{Sort: "rating"}.SortKey())
	assert.Equal(t, models.SortPrice, models.ListGamesQuery{Sort: "price"}.SortKey())
}
