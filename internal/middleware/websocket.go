package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade admits a websocket handshake for an existing game. lookup
// reports an error when the game cannot be joined; the request is then answered
// with 404 before any upgrade happens. It must run after EnsurePlayerID.
func WebSocketUpgrade(lookup func(gameID string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		playerID := PlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player id is required",
			})
		}
		gameID := c.Params("gameId")
		if err := lookup(gameID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// the websocket handler only sees Locals, not route params
		c.Locals(LocalGameID, utils.CopyString(gameID))
		return c.Next()
	}
}
