package handlers

import (
	"log"

	"Tally/services/session"
	socketio_types "Tally/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle socket.io client disconnections. Uses the association
// recorded when the socket created/joined/rejoined a session; the engine
// decides whether the seat is freed (the host's never is, so they can come
// back through rejoinSession with authority intact).
func HandleDisconnecting(engine *session.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] Socket %s disconnecting", client.Id())

		assoc, exists := sio.GetAssociation(client.Id())
		if exists {
			engine.Disconnect(assoc.Code, assoc.PlayerID)
		}

		// Finally remove connection from the maps
		sio.RemoveConnection(client.Id())
		log.Printf("[DISCONNECT-DONE] Socket %s removed", client.Id())
	}
}
