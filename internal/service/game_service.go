package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

// FindGame reports ErrGameNotFound for unknown ids.
func (gs *GameService) FindGame(gameID string) error {
	_, err := gs.gameManager.GetGame(gameID)
	return err
}

func (gs *GameService) GetGameState(gameID string) (StateView, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, notation string) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, notation); err != nil {
		return fmt.Errorf("move %s: %w", notation, err)
	}

	return nil
}

func (gs *GameService) HandleUndo(gameID string, playerID string) error {
	return gs.gameManager.Undo(gameID, playerID)
}

// EndGame discards a game. Only a seated player may end it.
func (gs *GameService) EndGame(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if !game.IsPlayerInGame(playerID) {
		return ErrNotInGame
	}
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
