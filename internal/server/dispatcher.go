package server

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gamearcade/matchserv/internal/accounts"
	"github.com/gamearcade/matchserv/internal/dependencies/clock"
	"github.com/gamearcade/matchserv/internal/game"
	"github.com/gamearcade/matchserv/internal/matchmaking"
	"github.com/gamearcade/matchserv/internal/model"
	"github.com/gamearcade/matchserv/internal/protocol"
	"github.com/gamearcade/matchserv/internal/transport"
)

// Dispatcher routes decoded messages to the account directory, matchmaking
// queue, and room manager. It is stateless: every precondition is checked
// before any mutation, and a failed precondition answers only the sender
// with an ERROR frame. Malformed frames are dropped with a logged
// diagnostic and no response.
type Dispatcher struct {
	registry *Registry
	accounts *accounts.Directory
	queue    *matchmaking.Queue
	rooms    *game.Manager
	sender   transport.Sender
	clock    clock.Clock
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given collaborators
func NewDispatcher(
	registry *Registry,
	accounts *accounts.Directory,
	queue *matchmaking.Queue,
	rooms *game.Manager,
	sender transport.Sender,
	clock clock.Clock,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		accounts: accounts,
		queue:    queue,
		rooms:    rooms,
		sender:   sender,
		clock:    clock,
		logger:   logger,
	}
}

// Dispatch decodes and handles one inbound frame from the given connection.
func (d *Dispatcher) Dispatch(ctx context.Context, connID int64, raw string) {
	msg, err := protocol.Decode(raw)
	if err != nil {
		d.logger.Warn("dropping malformed frame",
			slog.Int64("conn_id", connID),
			slog.String("error", err.Error()),
		)
		return
	}

	switch msg.Tag {
	case protocol.TagLogin:
		d.handleLogin(connID, msg.Fields[0], msg.Fields[1])
	case protocol.TagRegister:
		d.handleRegister(ctx, connID, msg.Fields[0], msg.Fields[1])
	case protocol.TagFindMatch:
		d.handleFindMatch(connID)
	case protocol.TagMove:
		d.handleMove(connID, msg.Fields[0])
	case protocol.TagRestart:
		d.handleRestart(connID)
	case protocol.TagChat:
		d.handleChat(connID, msg.Fields[0])
	case protocol.TagSpectateList:
		d.handleSpectateList(connID)
	case protocol.TagSpectateGame:
		d.handleSpectateGame(connID, msg.Fields[0])
	case protocol.TagLeaveGame:
		d.handleLeaveGame(connID)
	}
}

func (d *Dispatcher) send(connID int64, resp protocol.Response) {
	d.sender.Send(connID, resp.Encode())
}

// broadcast sends the response individually to both players and every
// spectator of the room.
func (d *Dispatcher) broadcast(room *game.Room, resp protocol.Response) {
	frame := resp.Encode()
	for _, id := range room.Recipients() {
		d.sender.Send(id, frame)
	}
}

// requireSession resolves the session bound to the connection, or
// ErrNotLoggedIn for anonymous connections.
func (d *Dispatcher) requireSession(connID int64) (*model.Session, error) {
	session, ok := d.registry.SessionFor(connID)
	if !ok {
		return nil, model.ErrNotLoggedIn
	}
	return session, nil
}

func (d *Dispatcher) handleLogin(connID int64, name, password string) {
	if d.registry.IsLoggedIn(connID) {
		d.send(connID, protocol.Failure(protocol.TagLogin, "User already logged in"))
		return
	}

	account, err := d.accounts.Authenticate(name, password)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrUserNotFound):
		d.send(connID, protocol.Failure(protocol.TagLogin, "User doesn't exist"))
		return
	case errors.Is(err, model.ErrWrongPassword):
		d.send(connID, protocol.Failure(protocol.TagLogin, "Wrong password"))
		return
	default:
		d.send(connID, protocol.Failure(protocol.TagLogin, "Login failed"))
		return
	}

	if _, err := d.registry.Bind(connID, account, d.clock.Now()); err != nil {
		// The account is live on another connection.
		d.send(connID, protocol.Failure(protocol.TagLogin, "User already logged in"))
		return
	}

	d.logger.Info("login", slog.Int64("conn_id", connID), slog.String("name", name))
	d.send(connID, protocol.Success(protocol.TagLogin, "Successfully logged in"))
}

func (d *Dispatcher) handleRegister(ctx context.Context, connID int64, name, password string) {
	if d.registry.IsLoggedIn(connID) {
		d.send(connID, protocol.Failure(protocol.TagRegister, "User already logged in"))
		return
	}

	account, err := d.accounts.Register(ctx, name, password)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrUserAlreadyExists):
		d.send(connID, protocol.Failure(protocol.TagRegister, "User already exists - try to login instead"))
		return
	default:
		d.send(connID, protocol.Failure(protocol.TagRegister, "Could not save account"))
		return
	}

	// Registration is an auto-login.
	if _, err := d.registry.Bind(connID, account, d.clock.Now()); err != nil {
		d.send(connID, protocol.Failure(protocol.TagRegister, "User already logged in"))
		return
	}

	d.logger.Info("register", slog.Int64("conn_id", connID), slog.String("name", name))
	d.send(connID, protocol.Success(protocol.TagRegister, "New user created"))
}

func (d *Dispatcher) handleFindMatch(connID int64) {
	session, err := d.requireSession(connID)
	if errors.Is(err, model.ErrNotLoggedIn) {
		d.send(connID, protocol.Failure(protocol.TagFindMatch, "Not logged in"))
		return
	}
	if _, seated := d.rooms.FindByParticipant(connID); seated {
		d.send(connID, protocol.Failure(protocol.TagFindMatch, "Already in a game room"))
		return
	}

	if err := d.queue.Enqueue(session); err != nil {
		d.send(connID, protocol.Failure(protocol.TagFindMatch, "Already in matchmaking queue"))
		return
	}

	first, second, err := d.queue.DequeuePair()
	if errors.Is(err, model.ErrNotEnoughPlayers) {
		// The sender stays queued until an opponent shows up.
		d.send(connID, protocol.Failure(protocol.TagFindMatch, "Not enough players to match"))
		return
	}

	room := d.rooms.CreateRoom(first, second)
	roomID := strconv.FormatInt(room.ID, 10)

	d.send(first.ConnID, protocol.Success(protocol.TagFindMatch, "Match found",
		model.SlotPlayer1.String(), second.Account.Name, roomID))
	d.send(second.ConnID, protocol.Success(protocol.TagFindMatch, "Match found",
		model.SlotPlayer2.String(), first.Account.Name, roomID))

	d.sendTurnState(room)
}

// sendTurnState tells each player whose move it is: SUCCESS to the seat on
// turn, ERROR to the waiting one.
func (d *Dispatcher) sendTurnState(room *game.Room) {
	onTurn := room.PlayerAt(room.Turn)
	waiting := room.PlayerAt(room.Turn.Other())
	d.send(onTurn.ConnID, protocol.Success(protocol.TagTurn, "Is your turn"))
	d.send(waiting.ConnID, protocol.Failure(protocol.TagTurn, "Opponent's turn"))
}

func (d *Dispatcher) handleMove(connID int64, boardState string) {
	room, ok := d.rooms.FindByParticipant(connID)
	if !ok {
		d.send(connID, protocol.Failure(protocol.TagMove, "Room not found"))
		return
	}

	board, err := model.ParseBoard(boardState)
	if err != nil {
		d.logger.Warn("dropping malformed board",
			slog.Int64("conn_id", connID),
			slog.String("board", boardState),
		)
		return
	}

	if err := room.ApplyMove(connID, board); err != nil {
		d.send(connID, protocol.Failure(protocol.TagMove, "Not your turn"))
		return
	}

	d.broadcast(room, protocol.Success(protocol.TagMove, "Board has been updated", room.Board.String()))

	if room.Status == game.StatusFinished {
		d.announceWinner(room)
		return
	}
	d.sendTurnState(room)
}

func (d *Dispatcher) announceWinner(room *game.Room) {
	winner := room.PlayerAt(room.Winner)
	loser := room.PlayerAt(room.Winner.Other())

	d.send(winner.ConnID, protocol.Success(protocol.TagGameOver, "You win!"))
	d.send(loser.ConnID, protocol.Failure(protocol.TagGameOver, "You lose!"))
	for _, spec := range room.Spectators() {
		d.send(spec.ConnID, protocol.Success(protocol.TagGameOver, winner.Account.Name+" wins"))
	}

	d.logger.Info("game over",
		slog.Int64("room_id", room.ID),
		slog.String("winner", winner.Account.Name),
	)
}

func (d *Dispatcher) handleRestart(connID int64) {
	room, ok := d.rooms.FindByParticipant(connID)
	if !ok {
		d.send(connID, protocol.Failure(protocol.TagRestart, "Room not found"))
		return
	}

	room.Restart()
	d.broadcast(room, protocol.Success(protocol.TagRestart, "Board reset", room.Board.String()))
}

func (d *Dispatcher) handleChat(connID int64, text string) {
	session, err := d.requireSession(connID)
	if errors.Is(err, model.ErrNotLoggedIn) {
		d.send(connID, protocol.Failure(protocol.TagChat, "Not logged in"))
		return
	}
	room, ok := d.rooms.FindByParticipant(connID)
	if !ok {
		d.send(connID, protocol.Failure(protocol.TagChat, "Room not found"))
		return
	}

	msg := room.AddChatMessage(session.Account.Name, text, d.clock.Now())
	d.broadcast(room, protocol.Success(protocol.TagChat, "Chat updated", msg.Speaker, msg.Text))
}

func (d *Dispatcher) handleSpectateList(connID int64) {
	if _, err := d.requireSession(connID); errors.Is(err, model.ErrNotLoggedIn) {
		d.send(connID, protocol.Failure(protocol.TagSpectateList, "Not logged in"))
		return
	}

	// One frame per live room; no rooms means no frames.
	for _, room := range d.rooms.ListRooms() {
		d.send(connID, protocol.Success(protocol.TagSpectateList, "Active game room",
			room.Label(), strconv.FormatInt(room.ID, 10)))
	}
}

func (d *Dispatcher) handleSpectateGame(connID int64, rawRoomID string) {
	session, err := d.requireSession(connID)
	if errors.Is(err, model.ErrNotLoggedIn) {
		d.send(connID, protocol.Failure(protocol.TagSpectateGame, "Not logged in"))
		return
	}

	roomID, err := strconv.ParseInt(rawRoomID, 10, 64)
	if err != nil {
		d.logger.Warn("dropping unparseable room id",
			slog.Int64("conn_id", connID),
			slog.String("room_id", rawRoomID),
		)
		return
	}

	room, err := d.rooms.FindByID(roomID)
	if errors.Is(err, model.ErrSpectateTargetNotFound) {
		d.send(connID, protocol.Failure(protocol.TagSpectateGame, "Spectate target not found"))
		return
	}
	if room.IsPlayer(connID) {
		d.send(connID, protocol.Failure(protocol.TagSpectateGame, "Cannot spectate your own game"))
		return
	}

	room.AddSpectator(session)
	d.send(connID, protocol.Success(protocol.TagSpectateGame, "Spectating the game",
		room.Label(), room.Board.String()))
}

func (d *Dispatcher) handleLeaveGame(connID int64) {
	if room, ok := d.rooms.FindByParticipant(connID); ok {
		opponent := room.Opponent(connID)
		d.send(opponent.ConnID, protocol.Failure(protocol.TagFindMatch, "The other player has disconnected"))
		d.send(connID, protocol.Failure(protocol.TagFindMatch, "Disconnected from the game room"))
		d.rooms.Destroy(room)
		return
	}

	// A queued-but-unmatched player backing out.
	d.queue.Remove(connID)
}
