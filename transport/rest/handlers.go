package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type gameManager interface {
	NewGame(ctx context.Context) (*usecase.Game, error)
	GetGame(ctx context.Context, id string) (*usecase.Game, error)
	Play(ctx context.Context, id string, row, col int) (*usecase.Game, bool, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.Game, error)
	EndGame(ctx context.Context, id string) error
}

type playRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type jumpRequest struct {
	Move *int `json:"move" binding:"required"`
}

type playResponse struct {
	*usecase.Game
	Accepted bool `json:"accepted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type GameHandler struct {
	logger *slog.Logger
	games  gameManager
}

func NewGameHandler(logger *slog.Logger, games gameManager) *GameHandler {
	return &GameHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *GameHandler) CreateGame(ctx *gin.Context) {
	game, err := that.games.NewGame(ctx.Request.Context())
	if err != nil {
		that.abortWithError(ctx, "CreateGame", err)
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

func (that *GameHandler) GetGame(ctx *gin.Context) {
	game, err := that.games.GetGame(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.abortWithError(ctx, "GetGame", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// Play answers 200 for rejected moves too; "accepted" tells them apart.
func (that *GameHandler) Play(ctx *gin.Context) {
	var req playRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	game, accepted, err := that.games.Play(ctx.Request.Context(), ctx.Param("id"), *req.Row, *req.Col)
	if err != nil {
		that.abortWithError(ctx, "Play", err)
		return
	}

	ctx.JSON(http.StatusOK, playResponse{Game: game, Accepted: accepted})
}

func (that *GameHandler) JumpTo(ctx *gin.Context) {
	var req jumpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "move is required"})
		return
	}

	game, err := that.games.JumpTo(ctx.Request.Context(), ctx.Param("id"), *req.Move)
	if err != nil {
		that.abortWithError(ctx, "JumpTo", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

func (that *GameHandler) EndGame(ctx *gin.Context) {
	if err := that.games.EndGame(ctx.Request.Context(), ctx.Param("id")); err != nil {
		that.abortWithError(ctx, "EndGame", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (that *GameHandler) abortWithError(ctx *gin.Context, method string, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "id", ctx.Param("id"), "error", err)
		ctx.AbortWithStatusJSON(status, errorResponse{Error: "Internal Server Error"})
		return
	}

	ctx.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrMoveOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
