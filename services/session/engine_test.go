package session

import (
	"testing"

	"Tally/models"
	"Tally/services/store"

	"github.com/stretchr/testify/assert"
)

// memPersistence keeps the engine tests off any real backend.
type memPersistence struct{}

func (memPersistence) Load() (map[string]*models.Session, error) {
	return make(map[string]*models.Session), nil
}
func (memPersistence) Save(map[string]*models.Session) error { return nil }

// fakeNotifier records every room interaction for assertions.
type fakeNotifier struct {
	joins   []string
	leaves  []string
	updates []*models.Session
	started []string
}

func (f *fakeNotifier) Join(connID, code string)  { f.joins = append(f.joins, connID+":"+code) }
func (f *fakeNotifier) Leave(connID, code string) { f.leaves = append(f.leaves, connID+":"+code) }
func (f *fakeNotifier) SessionUpdate(code string, sess *models.Session) {
	f.updates = append(f.updates, sess)
}
func (f *fakeNotifier) SessionStarted(code string) { f.started = append(f.started, code) }

func newTestEngine() (*Engine, *fakeNotifier, *store.Store) {
	s := store.NewStore(memPersistence{})
	n := &fakeNotifier{}
	return NewEngine(s, n), n, s
}

func TestCreateSession(t *testing.T) {
	e, n, _ := newTestEngine()

	res := e.CreateSession("conn1", "Ann", "Game1")

	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Len(t, res.Session.Code, 6)
	assert.Equal(t, "Game1", res.Session.Name)
	assert.False(t, res.Session.IsActive)
	assert.Equal(t, "Ann", res.Player.Nickname)
	assert.True(t, res.Player.IsHost)
	assert.Equal(t, 0, res.Player.Score)
	assert.Equal(t, res.Player.ID, res.Session.HostPlayerID)

	assert.Equal(t, []string{"conn1:" + res.Session.Code}, n.joins)
	assert.Len(t, n.updates, 1)
}

func TestJoinOrderMatchesArrival(t *testing.T) {
	e, _, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code

	e.JoinSession("conn2", code, "Bob")
	e.JoinSession("conn3", code, "Cid")

	sess := created.Session
	assert.Len(t, sess.Players, 3)
	assert.Equal(t, "Ann", sess.Players[0].Nickname)
	assert.Equal(t, "Bob", sess.Players[1].Nickname)
	assert.Equal(t, "Cid", sess.Players[2].Nickname)
	assert.False(t, sess.Players[1].IsHost)
}

func TestJoinUnknownCodeIsRejected(t *testing.T) {
	e, n, _ := newTestEngine()

	res := e.JoinSession("conn1", "NOPE99", "Bob")

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, "Session not found", res.Message)
	assert.Empty(t, n.updates)
}

func TestJoinActiveSessionIsRejected(t *testing.T) {
	e, n, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	e.StartSession(code)

	before := len(n.updates)
	res := e.JoinSession("conn2", code, "Bob")

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, "Session already in progress", res.Message)
	assert.Len(t, created.Session.Players, 1)
	assert.Len(t, n.updates, before)
}

func TestRejoinUnknownPlayerJoinsEvenWhenActive(t *testing.T) {
	e, _, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	e.StartSession(code)

	res := e.RejoinSession("conn2", code, "client-held-id", "Bob")

	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Len(t, created.Session.Players, 2)
	assert.Equal(t, "client-held-id", res.Player.ID)
	assert.False(t, res.Player.IsHost)
	assert.Equal(t, 0, res.Player.Score)
}

func TestRejoinKnownPlayerRefreshesInPlace(t *testing.T) {
	e, _, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	hostID := created.Player.ID

	e.StartSession(code)
	e.UpdateScore(code, hostID, 10)

	res := e.RejoinSession("conn9", code, hostID, "Annie")

	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Len(t, created.Session.Players, 1)
	assert.Equal(t, "Annie", created.Session.Players[0].Nickname)
	assert.True(t, created.Session.Players[0].IsHost)
	// Score survives the reconnect
	assert.Equal(t, 10, created.Session.Players[0].Score)
}

func TestRejoinUnknownSessionIsSilent(t *testing.T) {
	e, n, _ := newTestEngine()

	res := e.RejoinSession("conn1", "NOPE99", "p1", "Ann")

	assert.Equal(t, OutcomeNoop, res.Outcome)
	assert.Empty(t, n.updates)
}

func TestStartSessionEmitsUpdateAndStarted(t *testing.T) {
	e, n, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code

	before := len(n.updates)
	res := e.StartSession(code)

	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.True(t, created.Session.IsActive)
	assert.Len(t, n.updates, before+1)
	assert.Equal(t, []string{code}, n.started)

	// Starting twice is swallowed
	res = e.StartSession(code)
	assert.Equal(t, OutcomeNoop, res.Outcome)
	assert.Len(t, n.started, 1)
}

func TestUpdateScoreRequiresActiveSession(t *testing.T) {
	e, n, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	hostID := created.Player.ID

	before := len(n.updates)
	res := e.UpdateScore(code, hostID, 50)

	assert.Equal(t, OutcomeNoop, res.Outcome)
	assert.Equal(t, 0, created.Session.Players[0].Score)
	assert.Len(t, n.updates, before)
}

func TestUpdateScoreSetsAbsoluteValue(t *testing.T) {
	e, _, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	e.JoinSession("conn2", code, "Bob")
	e.StartSession(code)

	e.UpdateScore(code, created.Player.ID, 10)
	e.UpdateScore(code, created.Player.ID, 7)

	assert.Equal(t, 7, created.Session.Players[0].Score)
	assert.Equal(t, 0, created.Session.Players[1].Score)

	res := e.UpdateScore(code, "ghost", 99)
	assert.Equal(t, OutcomeNoop, res.Outcome)
}

func TestHostSelfLeaveOrphansHostSeat(t *testing.T) {
	e, _, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	hostID := created.Player.ID
	e.JoinSession("conn2", code, "Bob")

	res := e.LeaveSession("conn1", code, hostID)

	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Len(t, created.Session.Players, 1)
	assert.Equal(t, "Bob", created.Session.Players[0].Nickname)
	// Nobody inherits the seat: the host id still points at the departed player
	assert.Equal(t, hostID, created.Session.HostPlayerID)
	for _, p := range created.Session.Players {
		assert.False(t, p.IsHost)
	}
}

func TestDisconnectRemovesNonHostOnly(t *testing.T) {
	e, n, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	bob := e.JoinSession("conn2", code, "Bob")

	res := e.Disconnect(code, bob.Player.ID)
	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Len(t, created.Session.Players, 1)
	assert.Equal(t, "Ann", created.Session.Players[0].Nickname)

	// The host's seat survives the drop, but the room still hears about it
	before := len(n.updates)
	res = e.Disconnect(code, created.Player.ID)
	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Len(t, created.Session.Players, 1)
	assert.Len(t, n.updates, before+1)
}

func TestDisconnectUnknownSessionIsSilent(t *testing.T) {
	e, n, _ := newTestEngine()

	res := e.Disconnect("NOPE99", "p1")

	assert.Equal(t, OutcomeNoop, res.Outcome)
	assert.Empty(t, n.updates)
}

func TestFullMatchFlow(t *testing.T) {
	e, n, _ := newTestEngine()

	created := e.CreateSession("conn1", "Ann", "Game1")
	code := created.Session.Code
	assert.False(t, created.Session.IsActive)
	assert.Equal(t, "Ann", created.Session.Players[0].Nickname)
	assert.True(t, created.Session.Players[0].IsHost)

	joined := e.JoinSession("conn2", code, "Bob")
	assert.Len(t, created.Session.Players, 2)
	assert.False(t, joined.Player.IsHost)

	e.StartSession(code)
	assert.True(t, created.Session.IsActive)
	assert.Contains(t, n.started, code)

	e.UpdateScore(code, created.Player.ID, 10)
	assert.Equal(t, 10, created.Session.Players[0].Score)
	assert.Equal(t, 0, created.Session.Players[1].Score)
}
