package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection the game needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// SyncConn serializes writes to a connection that allows only one writer at a
// time. The game broadcasts from the mover's goroutine while the connection's
// own read loop replies to it, so both must write through the same SyncConn.
type SyncConn struct {
	mu   sync.Mutex
	conn Conn
}

func NewSyncConn(conn Conn) *SyncConn {
	return &SyncConn{conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *SyncConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex

	// writeMu orders writes; it is taken while g.mu is still held so clients see
	// states in the order they were produced.
	writeMu sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type Players struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// StateView is what clients see of a game.
type StateView struct {
	ID              string             `json:"id"`
	Board           [8][8]*model.Piece `json:"board"`
	ToMove          model.Color        `json:"toMove"`
	LegalMoves      []string           `json:"legalMoves"`
	MoveHistory     []string           `json:"moveHistory"`
	LastMove        string             `json:"lastMove,omitempty"`
	IsCheck         bool               `json:"isCheck"`
	Checkmate       bool               `json:"checkmate"`
	Stalemate       bool               `json:"stalemate"`
	Resolve         string             `json:"resolve,omitempty"`
	CastleRights    model.CastleRights `json:"castleRights"`
	EnPassantTarget string             `json:"enPassantTarget,omitempty"`
	Players         Players            `json:"players"`
}

// Game serializes access to one rules engine and fans its state out to the
// connected clients.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *model.GameState
	legalMoves  []model.Move
	inCheck     bool
	players     Players
	connections *GameConnections
}

func NewGame(id string) *Game {
	g := &Game{
		ID:          id,
		state:       model.NewGame(),
		connections: NewGameConnections(),
	}
	g.refresh()
	return g
}

// refresh recomputes the legal move set; callers hold g.mu.
func (g *Game) refresh() {
	g.legalMoves = g.state.LegalMoves()
	g.inCheck = g.state.InCheck()
}

// AddPlayer seats the player as white, then black. A player already seated gets
// their color back.
func (g *Game) AddPlayer(playerID string) (model.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.seat(playerID); ok {
		return color, nil
	}
	if g.players.White == "" {
		g.players.White = playerID
		log.Infof("game %s: %s joined as white", g.ID, playerID)
		return model.White, nil
	}
	if g.players.Black == "" {
		g.players.Black = playerID
		log.Infof("game %s: %s joined as black", g.ID, playerID)
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) seat(playerID string) (model.Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case g.players.White == playerID:
		return model.White, true
	case g.players.Black == playerID:
		return model.Black, true
	}
	return "", false
}

func (g *Game) canSpectate() bool {
	return g.players.White == "" || g.players.Black == ""
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seat(playerID)
	return ok
}

// MakeMove plays notation for playerID if it is their turn and the move is in the
// current legal set.
func (g *Game) MakeMove(playerID string, notation string) error {
	g.mu.Lock()
	color, ok := g.seat(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if g.state.Checkmate() || g.state.Stalemate() {
		g.mu.Unlock()
		return ErrGameOver
	}
	if color != g.state.ToMove() {
		g.mu.Unlock()
		return ErrNotYourTurn
	}
	move, err := model.FindMove(g.legalMoves, notation)
	if err != nil {
		g.mu.Unlock()
		return err
	}

	g.state.Apply(move)
	g.refresh()
	view := g.view()
	g.connections.writeMu.Lock()
	g.mu.Unlock()

	log.Debugf("game %s: %s played %s", g.ID, color, move)
	if view.Resolve != "" {
		log.Infof("game %s: %s", g.ID, view.Resolve)
	}
	g.broadcast(view)
	return nil
}

// Undo takes back the last move. Either seated player may ask for it.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	if _, ok := g.seat(playerID); !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if g.state.Plies() == 0 {
		g.mu.Unlock()
		return ErrNothingToUndo
	}
	g.state.Undo()
	g.refresh()
	view := g.view()
	g.connections.writeMu.Lock()
	g.mu.Unlock()

	log.Debugf("game %s: %s took back a move", g.ID, playerID)
	g.broadcast(view)
	return nil
}

func (g *Game) GetState() StateView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

// view builds a snapshot; callers hold g.mu.
func (g *Game) view() StateView {
	v := StateView{
		ID:           g.ID,
		ToMove:       g.state.ToMove(),
		LegalMoves:   make([]string, len(g.legalMoves)),
		IsCheck:      g.inCheck,
		Checkmate:    g.state.Checkmate(),
		Stalemate:    g.state.Stalemate(),
		CastleRights: g.state.CastleRights(),
		Players:      g.players,
	}
	board := g.state.Board()
	for row := range board {
		for col := range board[row] {
			if p := board[row][col]; !p.IsEmpty() {
				v.Board[row][col] = &p
			}
		}
	}
	for i, m := range g.legalMoves {
		v.LegalMoves[i] = m.Algebraic()
	}
	history := g.state.MoveLog()
	v.MoveHistory = make([]string, len(history))
	for i, m := range history {
		v.MoveHistory[i] = m.Algebraic()
	}
	if len(history) > 0 {
		v.LastMove = history[len(history)-1].Algebraic()
	}
	if ep := g.state.EnPassant(); ep.OnBoard() {
		v.EnPassantTarget = ep.String()
	}
	switch {
	case v.Checkmate:
		v.Resolve = "checkmate"
	case v.Stalemate:
		v.Resolve = "stalemate"
	}
	return v
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, seated := g.seat(playerID)
	if !seated && !g.canSpectate() {
		g.mu.Unlock()
		return ErrNotAuthorized
	}
	view := g.view()
	g.connections.writeMu.Lock()
	g.mu.Unlock()
	defer g.connections.writeMu.Unlock()

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// the existing connection stays; the caller closes the new one
		g.connections.mu.Unlock()
		log.Warnf("game %s: duplicate connection for %s rejected", g.ID, playerID)
		return ErrDuplicateConnection
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for %s", g.ID, playerID)

	return sendState(conn, view)
}

// UnregisterConnection forgets conn if it is still the one registered for
// playerID. A connection that replaced it is left alone.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// broadcast sends view to every connection and drops the ones that fail. The
// caller holds writeMu; it is released here.
func (g *Game) broadcast(view StateView) {
	defer g.connections.writeMu.Unlock()

	msg, err := stateMessage(view)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	var failed []string
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}
	if len(failed) == 0 {
		return
	}

	g.connections.mu.Lock()
	for _, playerID := range failed {
		if g.connections.connections[playerID] == active[playerID] {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}

func stateMessage(view StateView) (ws.Message, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return ws.Message{}, fmt.Errorf("marshal state: %w", err)
	}
	return ws.Message{Type: ws.MessageTypeGameState, Payload: raw}, nil
}

// sendState writes view to a single connection.
func sendState(conn Conn, view StateView) error {
	msg, err := stateMessage(view)
	if err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
