package service

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrGameFull      = errors.New("game is full")
	ErrGameOver      = errors.New("game is over")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNothingToUndo = errors.New("no moves to undo")
	ErrNotAuthorized = errors.New("not authorized to join this game")

	ErrDuplicateConnection = errors.New("player already connected to this game")
)
