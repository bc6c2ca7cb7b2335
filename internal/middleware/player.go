package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
)

// Locals keys set by this package.
const (
	LocalPlayerID = "playerID"
	LocalGameID   = "gameID"
)

// PlayerIDHeader carries the client's player id. Browsers cannot set headers on
// a websocket handshake, so the playerId query parameter is accepted as well.
const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID rejects requests that do not say which player is making them.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			log.Debugf("rejecting %s %s: no player id", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player id is required in the " + PlayerIDHeader + " header or the playerId query parameter",
			})
		}

		// c.Get and c.Query point into the request buffer unless the app is immutable
		c.Locals(LocalPlayerID, utils.CopyString(playerID))
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "" outside it.
func PlayerID(c *fiber.Ctx) string {
	playerID, _ := c.Locals(LocalPlayerID).(string)
	return playerID
}
