package handlers

import (
	"log"

	"Tally/services/session"
	socketio_types "Tally/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the creation of a new session. The creator becomes the
// host, gets joined to the session's socket.io room, and receives the fresh
// record plus their own player entry (with the id the client must hold on
// to for rejoins).
func HandleCreateSession(engine *session.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := eventPayload(args)
		if !ok {
			log.Printf("[CREATE-ERROR] Malformed payload from socket %s", client.Id())
			client.Emit("error", gin.H{"message": "Malformed createSession payload"})
			return
		}

		nickname := payloadString(payload, "nickname")
		sessionName := payloadString(payload, "sessionName")
		log.Printf("[CREATE] createSession from socket %s - nickname: %s, name: %s",
			client.Id(), nickname, sessionName)

		res := engine.CreateSession(string(client.Id()), nickname, sessionName)
		if res.Outcome == session.OutcomeRejected {
			client.Emit("error", gin.H{"message": res.Message})
			return
		}

		sio.Associate(client.Id(), res.Session.Code, res.Player.ID)
		client.Emit("createSessionResponse", gin.H{
			"session": res.Session,
			"player":  res.Player,
		})
	}
}

// Function to handle joining an existing session by code. Only valid while
// the session is still in the lobby phase; a bad code or an in-progress
// session gets an explicit error event back and nothing else happens.
func HandleJoinSession(engine *session.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := eventPayload(args)
		if !ok {
			log.Printf("[JOIN-ERROR] Malformed payload from socket %s", client.Id())
			client.Emit("error", gin.H{"message": "Malformed joinSession payload"})
			return
		}

		code := payloadString(payload, "code")
		nickname := payloadString(payload, "nickname")
		log.Printf("[JOIN] joinSession from socket %s - code: %s, nickname: %s",
			client.Id(), code, nickname)

		res := engine.JoinSession(string(client.Id()), code, nickname)
		if res.Outcome == session.OutcomeRejected {
			client.Emit("error", gin.H{"message": res.Message})
			return
		}

		sio.Associate(client.Id(), res.Session.Code, res.Player.ID)
		client.Emit("joinSessionResponse", gin.H{
			"session": res.Session,
			"player":  res.Player,
		})
	}
}

// Function to handle a client reconnecting with a held playerId. No error
// is surfaced when the session is gone; the reply only fires when the
// reconciliation actually happened.
func HandleRejoinSession(engine *session.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := eventPayload(args)
		if !ok {
			log.Printf("[REJOIN-ERROR] Malformed payload from socket %s", client.Id())
			return
		}

		code := payloadString(payload, "code")
		playerID := payloadString(payload, "playerId")
		nickname := payloadString(payload, "nickname")
		log.Printf("[REJOIN] rejoinSession from socket %s - code: %s, playerId: %s",
			client.Id(), code, playerID)

		res := engine.RejoinSession(string(client.Id()), code, playerID, nickname)
		if res.Outcome != session.OutcomeOK {
			return
		}

		sio.Associate(client.Id(), res.Session.Code, res.Player.ID)
		client.Emit("rejoinSessionResponse", gin.H{
			"session": res.Session,
			"player":  res.Player,
		})
	}
}
