package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const (
	errInvalidPayload = "invalid payload"
	errIDRequired     = "id is required"
	errInternal       = "internal error"
)

func (that *Server) handleNewGame(ctx context.Context, _ *Message) ResponsePayload {
	game, err := that.games.NewGame(ctx)
	if err != nil {
		return that.failure("handleNewGame", "", err)
	}

	return gamePayload(game)
}

func (that *Server) handleViewGame(ctx context.Context, msg *Message) ResponsePayload {
	req, errPayload := decodeRequest(msg)
	if errPayload != nil {
		return *errPayload
	}

	game, err := that.games.GetGame(ctx, req.ID)
	if err != nil {
		return that.failure("handleViewGame", req.ID, err)
	}

	return gamePayload(game)
}

func (that *Server) handlePlay(ctx context.Context, msg *Message) ResponsePayload {
	req, errPayload := decodeRequest(msg)
	if errPayload != nil {
		return *errPayload
	}

	if req.Row == nil || req.Col == nil {
		return errorPayload("row and col are required")
	}

	game, accepted, err := that.games.Play(ctx, req.ID, *req.Row, *req.Col)
	if err != nil {
		return that.failure("handlePlay", req.ID, err)
	}

	payload := gamePayload(game)
	payload.Accepted = &accepted

	return payload
}

func (that *Server) handleJump(ctx context.Context, msg *Message) ResponsePayload {
	req, errPayload := decodeRequest(msg)
	if errPayload != nil {
		return *errPayload
	}

	if req.Move == nil {
		return errorPayload("move is required")
	}

	game, err := that.games.JumpTo(ctx, req.ID, *req.Move)
	if err != nil {
		return that.failure("handleJump", req.ID, err)
	}

	return gamePayload(game)
}

func (that *Server) handleEndGame(ctx context.Context, msg *Message) ResponsePayload {
	req, errPayload := decodeRequest(msg)
	if errPayload != nil {
		return *errPayload
	}

	if err := that.games.EndGame(ctx, req.ID); err != nil {
		return that.failure("handleEndGame", req.ID, err)
	}

	return ResponsePayload{ID: req.ID}
}

func decodeRequest(msg *Message) (*RequestPayload, *ResponsePayload) {
	var req RequestPayload

	if len(msg.Payload) == 0 {
		payload := errorPayload(errIDRequired)
		return nil, &payload
	}

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		payload := errorPayload(errInvalidPayload)
		return nil, &payload
	}

	if req.ID == "" {
		payload := errorPayload(errIDRequired)
		return nil, &payload
	}

	return &req, nil
}

// failure turns a usecase error into a client message. Only expected errors are
// shown verbatim.
func (that *Server) failure(method, id string, err error) ResponsePayload {
	if errors.Is(err, apperror.ErrSessionNotFound) || errors.Is(err, apperror.ErrMoveOutOfRange) {
		return errorPayload(err.Error())
	}

	that.logger.Error("failed to process message", "method", method, "id", id, "error", err)

	return errorPayload(errInternal)
}

func gamePayload(game *usecase.Game) ResponsePayload {
	return ResponsePayload{
		ID:   game.ID,
		View: &game.View,
	}
}
