package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KingGimer44/VideoJuego/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/api/", time.Second)
}

func TestAPIClient_Login(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Email != "ana@example.com" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Credenciales inválidas"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"Ana","email":"ana@example.com"},"message":"Login exitoso","token":"tok"}`))
	})

	resp, err := api.Login(context.Background(), "ana@example.com", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "tok", resp.Token)

	_, err = api.Login(context.Background(), "nadie@example.com", "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestAPIClient_Register(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"El usuario ya existe"}`))
	})

	_, err := api.Register(context.Background(), "Ana", "ana@example.com", "secreto")
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.ErrorContains(t, err, "El usuario ya existe")
}

func TestAPIClient_ListGamesQuery(t *testing.T) {
	var got string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		_, _ = w.Write([]byte(`null`))
	})

	games, err := api.ListGames(context.Background(), models.ListGamesQuery{Search: "zel da", Genre: models.GenreAll, Sort: "price"})
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
	assert.Equal(t, "search=zel+da&sort=price", got)
}

func TestAPIClient_GetGame(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/games/1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Juego no encontrado"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","title":"Hollow Knight","platform":["PC"],"price":15.99}`))
	})

	g, err := api.GetGame(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Hollow Knight", g.Title)
	assert.Equal(t, models.Platforms{"PC"}, g.Platform)

	_, err = api.GetGame(context.Background(), "2")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestAPIClient_NonJSONError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := api.ListGames(context.Background(), models.ListGamesQuery{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestAPIClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	api := NewAPIClient(srv.URL, 50*time.Millisecond)
	_, err := api.ListGames(context.Background(), models.ListGamesQuery{})
	require.Error(t, err)
	assert.Zero(t, StatusOf(err))
}
