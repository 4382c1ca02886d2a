package handlers

import (
	"log"

	"Tally/services/session"
	socketio_types "Tally/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the host starting the match. Locks the session against
// new joins; the room gets the updated record plus a distinct sessionStarted
// event. Anything invalid (unknown code, already started) is swallowed.
func HandleStartSession(engine *session.Engine, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := eventPayload(args)
		if !ok {
			log.Printf("[START-ERROR] Malformed payload from socket %s", client.Id())
			return
		}

		code := payloadString(payload, "code")
		log.Printf("[START] startSession from socket %s - code: %s", client.Id(), code)

		engine.StartSession(code)
	}
}

// Function to handle a score report. The value is an absolute set, not a
// delta; the room sees it through the sessionUpdate broadcast.
func HandleUpdateScore(engine *session.Engine, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := eventPayload(args)
		if !ok {
			log.Printf("[SCORE-ERROR] Malformed payload from socket %s", client.Id())
			return
		}

		code := payloadString(payload, "code")
		playerID := payloadString(payload, "playerId")
		score, ok := payloadInt(payload, "score")
		if !ok {
			log.Printf("[SCORE-ERROR] Non-numeric score from socket %s", client.Id())
			return
		}

		engine.UpdateScore(code, playerID, score)
	}
}

// Function to handle a player leaving voluntarily. Works in any phase and
// for the host too; the socket's association is cleared so a later drop of
// the same connection cannot remove anyone else.
func HandleLeaveSession(engine *session.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := eventPayload(args)
		if !ok {
			log.Printf("[LEAVE-ERROR] Malformed payload from socket %s", client.Id())
			return
		}

		code := payloadString(payload, "code")
		playerID := payloadString(payload, "playerId")
		log.Printf("[LEAVE] leaveSession from socket %s - code: %s, playerId: %s",
			client.Id(), code, playerID)

		engine.LeaveSession(string(client.Id()), code, playerID)
		sio.ClearAssociation(client.Id())
	}
}
