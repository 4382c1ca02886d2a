package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateSessionCode()
		assert.Len(t, code, 6)
		for _, c := range code {
			assert.Contains(t, codeCharset, string(c))
		}
	}
}

func TestPlayerLookup(t *testing.T) {
	s := &Session{
		Code: "ABC123",
		Players: []Player{
			{ID: "p1", Nickname: "Ann", IsHost: true},
			{ID: "p2", Nickname: "Bob"},
		},
	}

	p := s.Player("p2")
	assert.NotNil(t, p)
	assert.Equal(t, "Bob", p.Nickname)

	// Mutating through the pointer must hit the session itself
	p.Score = 42
	assert.Equal(t, 42, s.Players[1].Score)

	assert.Nil(t, s.Player("nope"))
}

func TestRemovePlayerKeepsOrder(t *testing.T) {
	s := &Session{Players: []Player{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	assert.True(t, s.RemovePlayer("b"))
	assert.Equal(t, []Player{{ID: "a"}, {ID: "c"}}, s.Players)

	assert.False(t, s.RemovePlayer("b"))
	assert.Len(t, s.Players, 2)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	fresh := &Session{CreatedAt: now.Add(-23 * time.Hour)}
	stale := &Session{CreatedAt: now.Add(-25 * time.Hour)}

	assert.False(t, fresh.Expired(now))
	assert.True(t, stale.Expired(now))
}

func TestCloneIsDeep(t *testing.T) {
	s := &Session{Code: "XYZ999", Players: []Player{{ID: "p1", Score: 1}}}

	c := s.Clone()
	c.Players[0].Score = 99

	assert.Equal(t, 1, s.Players[0].Score)
	assert.Equal(t, 99, c.Players[0].Score)
}
