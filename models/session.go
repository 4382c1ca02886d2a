package models

import (
	"math/rand"
	"time"

	session_constants "Tally/constants/session"
)

/*
 * 'Session' is one score-keeping match instance, keyed by a short code that
 * players type in to join. The record is what gets broadcast to the room on
 * every mutation, so the json tags are the wire format.
 */
type Session struct {
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	HostPlayerID string    `json:"hostPlayerId"`
	Players      []Player  `json:"players"` // insertion order = join order
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `json:"isActive"` // false = lobby (joinable), true = in progress
}

// Player is one participant inside a session. The ID is generated server
// side and held by the client so it survives reconnects.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"isHost"`
}

// Player returns a pointer into Players for the given id, or nil.
func (s *Session) Player(playerID string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

// RemovePlayer deletes the matching entry preserving order. Reports whether
// anything was removed.
func (s *Session) RemovePlayer(playerID string) bool {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return true
		}
	}
	return false
}

// Expired reports whether the session fell out of its retention window.
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > session_constants.SessionTTL
}

// Clone returns a deep copy, used to hand snapshots to the persistence
// writer without racing in-place mutations.
func (s *Session) Clone() *Session {
	c := *s
	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	return &c
}

// Random session code generation
const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSessionCode returns a random 6-character uppercase code.
// Uniqueness against live sessions is the caller's problem (the lifecycle
// engine retries against the store).
func GenerateSessionCode() string {
	b := make([]byte, session_constants.SessionCodeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}
