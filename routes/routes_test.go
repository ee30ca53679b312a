package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/controllers"
	"github.com/KingGimer44/VideoJuego/database"
	"github.com/KingGimer44/VideoJuego/middleware"
	"github.com/KingGimer44/VideoJuego/models"
	"github.com/KingGimer44/VideoJuego/repository"
	"github.com/KingGimer44/VideoJuego/routes"
	"github.com/KingGimer44/VideoJuego/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stack struct {
	router *gin.Engine
	tokens *services.TokenService
}

func newStack(t *testing.T, requireAuth bool) *stack {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, SQLitePath: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	_, err = database.SeedGames(context.Background(), db, logger)
	require.NoError(t, err)

	tokens, err := services.NewTokenService("routes-test-secret", time.Hour)
	require.NoError(t, err)

	gameService := services.NewGameService(repository.NewGormGameRepository(db), nil, nil, nil, logger)
	authService := services.NewAuthService(repository.NewGormUserRepository(db), services.PlainHasher{}, tokens, nil, nil, services.AuthOptions{}, logger)

	var guards []gin.HandlerFunc
	if requireAuth {
		guards = append(guards, middleware.BearerAuth(tokens))
	}

	r := gin.New()
	r.Use(apperrors.Recovery(logger), apperrors.ErrorMiddleware(logger))
	r.Use(middleware.CORSMiddleware(middleware.GamesCORS.Methods, middleware.AuthCORS, middleware.GamesCORS))
	routes.Register(r, "videojuego-api", controllers.NewAuthController(authService), controllers.NewGameController(gameService), guards...)

	return &stack{router: r, tokens: tokens}
}

func (s *stack) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeGames(t *testing.T, w *httptest.ResponseRecorder) []models.Game {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var games []models.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	return games
}

func titles(games []models.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}

func TestCatalog_SortSearchAndGenre(t *testing.T) {
	s := newStack(t, false)

	games := decodeGames(t, s.do(http.MethodGet, "/games?sort=rating", ""))
	require.Len(t, games, 6)
	assert.Equal(t, []string{"Red Dead Redemption 2", "The Witcher 3"}, titles(games[:2]))

	games = decodeGames(t, s.do(http.MethodGet, "/api/games?sort=price", ""))
	assert.Equal(t, "Hollow Knight", games[0].Title)

	games = decodeGames(t, s.do(http.MethodGet, "/games?search=acción", ""))
	assert.ElementsMatch(t, []string{"Red Dead Redemption 2", "Hades"}, titles(games))

	games = decodeGames(t, s.do(http.MethodGet, "/games?genre=RPG", ""))
	assert.Equal(t, []string{"The Witcher 3"}, titles(games))

	games = decodeGames(t, s.do(http.MethodGet, "/games?genre=Todos&search=zzz", ""))
	assert.Empty(t, games)
}

func TestGame_CRUDLifecycle(t *testing.T) {
	s := newStack(t, false)
	body := `{"title":"Celeste","description":"Escala la montaña","price":19.99,"image":"https://example.com/c.jpg","genre":"Plataformas","rating":4.8,"platform":["PC","Nintendo Switch"],"releaseDate":"2018-01-25"}`

	w := s.do(http.MethodPost, "/games", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = s.do(http.MethodGet, "/api/games/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"platform":["PC","Nintendo Switch"]`)

	updated := `{"title":"Celeste","description":"Escala la montaña","price":9.99,"image":"https://example.com/c.jpg","genre":"Plataformas","rating":4.9,"platform":"PC","releaseDate":"2018-01-25"}`
	w = s.do(http.MethodPut, "/games/"+created.ID, updated)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"price":9.99`)

	w = s.do(http.MethodDelete, "/games/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Juego eliminado correctamente"}`, w.Body.String())

	w = s.do(http.MethodGet, "/games/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Juego no encontrado"}`, w.Body.String())

	w = s.do(http.MethodDelete, "/games/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGame_BlankIDAndTrailingSlash(t *testing.T) {
	s := newStack(t, false)

	w := s.do(http.MethodGet, "/games/%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"ID de juego requerido"}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/games/%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"ID de juego requerido"}`, w.Body.String())

	w = s.do(http.MethodGet, "/games/", "")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/games", w.Header().Get("Location"))

	w = s.do(http.MethodDelete, "/games/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ruta no encontrada"}`, w.Body.String())
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	s := newStack(t, false)
	reg := `{"name":"Ana","email":"Ana@Example.com","password":"secreto"}`

	w := s.do(http.MethodPost, "/auth/register", reg)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"message":"Usuario creado exitosamente"`)
	assert.NotContains(t, w.Body.String(), "secreto")
	assert.NotContains(t, w.Body.String(), `"token"`)

	w = s.do(http.MethodPost, "/api/auth/register", reg)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"El usuario ya existe"}`, w.Body.String())

	// Password is not checked unless verification is turned on.
	w = s.do(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"otra"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "Login exitoso", resp.Message)
	assert.NotEmpty(t, resp.Token)

	w = s.do(http.MethodPost, "/auth/login", `{"email":"nadie@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Credenciales inválidas"}`, w.Body.String())
}

func TestSystemRoutes(t *testing.T) {
	s := newStack(t, false)

	w := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ruta no encontrada"}`, w.Body.String())

	w = s.do(http.MethodGet, "/auth/login", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Método no permitido"}`, w.Body.String())

	w = s.do(http.MethodPatch, "/games/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPreflight(t *testing.T) {
	s := newStack(t, false)

	w := s.do(http.MethodOptions, "/auth/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))

	w = s.do(http.MethodOptions, "/api/games/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWriteGuard(t *testing.T) {
	s := newStack(t, true)

	w := s.do(http.MethodGet, "/games", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/games/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := s.tokens.Issue(&models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	w = s.do(http.MethodDelete, "/games/1", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
