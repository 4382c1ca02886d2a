package session

import (
	"log"
	"sync"
	"time"

	session_constants "Tally/constants/session"
	"Tally/models"
	"Tally/services/store"

	"github.com/google/uuid"
)

// RoomNotifier is the engine's view of the transport: room membership plus
// room-wide fan-out. Direct replies to the originating connection are the
// transport handlers' job, driven by the returned Result.
type RoomNotifier interface {
	Join(connID string, code string)
	Leave(connID string, code string)
	SessionUpdate(code string, sess *models.Session)
	SessionStarted(code string)
}

// Engine is the session lifecycle state machine. Every operation runs
// under one mutex, mutation through broadcast, reproducing the serialized
// event processing the protocol assumes (socket.io delivers events on
// library goroutines).
type Engine struct {
	mu       sync.Mutex
	store    *store.Store
	notifier RoomNotifier
}

func NewEngine(s *store.Store, n RoomNotifier) *Engine {
	return &Engine{store: s, notifier: n}
}

// CreateSession builds a fresh session in the lobby phase with the creator
// as its host and only player. The code is retried against the store until
// unused; running out of attempts rejects the create.
func (e *Engine) CreateSession(connID, nickname, sessionName string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	code, ok := e.generateUniqueCode()
	if !ok {
		log.Printf("[CREATE-ERROR] Exhausted %d attempts generating a session code", session_constants.MaxCodeAttempts)
		return Result{Outcome: OutcomeRejected, Message: "Could not allocate a session code"}
	}

	host := models.Player{
		ID:       uuid.NewString(),
		Nickname: nickname,
		Score:    0,
		IsHost:   true,
	}
	sess := &models.Session{
		Code:         code,
		Name:         sessionName,
		HostPlayerID: host.ID,
		Players:      []models.Player{host},
		CreatedAt:    time.Now(),
		IsActive:     false,
	}
	e.store.Put(code, sess)

	log.Printf("[CREATE] Session %s (%s) created by %s", code, sessionName, nickname)

	e.notifier.Join(connID, code)
	e.broadcast(code)
	return Result{Outcome: OutcomeOK, Session: sess, Player: host}
}

// JoinSession appends a new participant. Only allowed while the session is
// still in the lobby phase; violations get an explicit error reply and no
// state change.
func (e *Engine) JoinSession(connID, code, nickname string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, found := e.store.Get(code)
	if !found {
		log.Printf("[JOIN-ERROR] Session %s not found", code)
		return Result{Outcome: OutcomeRejected, Message: "Session not found"}
	}
	if sess.IsActive {
		log.Printf("[JOIN-ERROR] Session %s already in progress", code)
		return Result{Outcome: OutcomeRejected, Message: "Session already in progress"}
	}

	player := models.Player{
		ID:       uuid.NewString(),
		Nickname: nickname,
		Score:    0,
		IsHost:   false,
	}
	sess.Players = append(sess.Players, player)

	log.Printf("[JOIN] %s joined session %s (%d players)", nickname, code, len(sess.Players))

	e.notifier.Join(connID, code)
	e.broadcast(code)
	return Result{Outcome: OutcomeOK, Session: sess, Player: player}
}

// RejoinSession reconciles a client that came back with a held playerId.
// A known id refreshes nickname and host flag in place, scores untouched.
// An unknown id is appended as a brand-new player even mid-game: on the
// reconnect path presence wins over phase gating, otherwise a player whose
// record was cleaned up after a drop could never get back in. A missing
// session is silently ignored (the client will be told nothing; its next
// explicit join surfaces the error instead).
func (e *Engine) RejoinSession(connID, code, playerID, nickname string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, found := e.store.Get(code)
	if !found {
		log.Printf("[REJOIN] Session %s not found, ignoring", code)
		return Result{Outcome: OutcomeNoop}
	}

	var player models.Player
	if existing := sess.Player(playerID); existing != nil {
		existing.Nickname = nickname
		existing.IsHost = existing.ID == sess.HostPlayerID
		player = *existing
		log.Printf("[REJOIN] %s refreshed in session %s (host=%v)", nickname, code, player.IsHost)
	} else {
		player = models.Player{
			ID:       playerID,
			Nickname: nickname,
			Score:    0,
			IsHost:   playerID == sess.HostPlayerID,
		}
		sess.Players = append(sess.Players, player)
		log.Printf("[REJOIN] %s added to session %s as new player (host=%v)", nickname, code, player.IsHost)
	}

	// Reconciliation always dirties state, even the refresh path
	e.store.SaveAsync()

	e.notifier.Join(connID, code)
	e.broadcast(code)
	return Result{Outcome: OutcomeOK, Session: sess, Player: player}
}

// StartSession flips the lobby into the active phase. There is no way
// back: no event ever clears IsActive, the record just ages out.
func (e *Engine) StartSession(code string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, found := e.store.Get(code)
	if !found || sess.IsActive {
		return Result{Outcome: OutcomeNoop}
	}

	sess.IsActive = true
	log.Printf("[START] Session %s started with %d players", code, len(sess.Players))

	// Two separate notifications: the updated record, then the explicit
	// transition event so clients can tell "session changed" from
	// "gameplay begins now".
	e.broadcast(code)
	e.notifier.SessionStarted(code)
	return Result{Outcome: OutcomeOK, Session: sess}
}

// UpdateScore sets a player's score to an absolute value. Only accepted
// while the session is active and the player exists; anything else is
// silently dropped.
func (e *Engine) UpdateScore(code, playerID string, score int) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, found := e.store.Get(code)
	if !found || !sess.IsActive {
		return Result{Outcome: OutcomeNoop}
	}
	player := sess.Player(playerID)
	if player == nil {
		return Result{Outcome: OutcomeNoop}
	}

	player.Score = score
	log.Printf("[SCORE] Session %s: %s -> %d", code, player.Nickname, score)

	e.broadcast(code)
	return Result{Outcome: OutcomeOK, Session: sess}
}

// LeaveSession removes the player and releases the connection's room
// membership. Hosts may remove themselves too: HostPlayerID then points at
// an id no longer present and nobody inherits the seat.
func (e *Engine) LeaveSession(connID, code, playerID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, found := e.store.Get(code)
	if !found {
		return Result{Outcome: OutcomeNoop}
	}

	sess.RemovePlayer(playerID)
	log.Printf("[LEAVE] Player %s left session %s (%d players remain)", playerID, code, len(sess.Players))

	e.notifier.Leave(connID, code)
	e.broadcast(code)
	return Result{Outcome: OutcomeOK, Session: sess}
}

// Disconnect is the connection-loss path, keyed by the (code, playerId)
// the transport associated with the dropped connection. The host's seat
// survives the drop so a reconnect through RejoinSession keeps authority;
// everyone else is removed. The room is notified whenever the session
// exists, removal or not.
func (e *Engine) Disconnect(code, playerID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, found := e.store.Get(code)
	if !found {
		return Result{Outcome: OutcomeNoop}
	}

	if playerID != sess.HostPlayerID {
		sess.RemovePlayer(playerID)
		log.Printf("[DISCONNECT] Player %s removed from session %s", playerID, code)
	} else {
		log.Printf("[DISCONNECT] Host of session %s dropped, keeping their seat", code)
	}

	e.broadcast(code)
	return Result{Outcome: OutcomeOK, Session: sess}
}

func (e *Engine) generateUniqueCode() (string, bool) {
	for i := 0; i < session_constants.MaxCodeAttempts; i++ {
		code := models.GenerateSessionCode()
		if _, taken := e.store.Get(code); !taken {
			return code, true
		}
	}
	return "", false
}
