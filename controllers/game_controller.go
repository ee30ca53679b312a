package controllers

import (
	"net/http"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/models"
	"github.com/KingGimer44/VideoJuego/services"

	"github.com/gin-gonic/gin"
)

// GameController handles HTTP requests for the catalog.
type GameController struct {
	gameService services.GameService
	validator   *RequestValidator
}

// NewGameController creates a new GameController.
func NewGameController(gameService services.GameService) *GameController {
	return &GameController{gameService: gameService, validator: NewRequestValidator()}
}

// ListGames handles GET /games.
func (gc *GameController) ListGames(ctx *gin.Context) {
	q := gc.validator.ParseListQuery(ctx)

	games, svcErr := gc.gameService.ListGames(ctx.Request.Context(), q)
	if svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, games)
}

// GetGame handles GET /games/:id.
func (gc *GameController) GetGame(ctx *gin.Context) {
	game, svcErr := gc.gameService.GetGame(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// CreateGame handles POST /games.
func (gc *GameController) CreateGame(ctx *gin.Context) {
	req, ok := gc.bindGame(ctx)
	if !ok {
		return
	}

	game, svcErr := gc.gameService.CreateGame(ctx.Request.Context(), req)
	if svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

// UpdateGame handles PUT /games/:id.
func (gc *GameController) UpdateGame(ctx *gin.Context) {
	req, ok := gc.bindGame(ctx)
	if !ok {
		return
	}

	game, svcErr := gc.gameService.UpdateGame(ctx.Request.Context(), ctx.Param("id"), req)
	if svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// DeleteGame handles DELETE /games/:id.
func (gc *GameController) DeleteGame(ctx *gin.Context) {
	if svcErr := gc.gameService.DeleteGame(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": services.MsgGameDeleted})
}

func (gc *GameController) bindGame(ctx *gin.Context) (*models.GameRequest, bool) {
	var req models.GameRequest
	if appErr := gc.validator.BindJSON(ctx, &req); appErr != nil {
		apperrors.Respond(ctx, appErr)
		return nil, false
	}
	if appErr := gc.validator.ValidateGame(&req); appErr != nil {
		apperrors.Respond(ctx, appErr)
		return nil, false
	}
	return &req, true
}
