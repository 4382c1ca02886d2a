package socketio_types

import (
	"sync"

	"Tally/models"

	"github.com/zishang520/socket.io/v2/socket"
)

// RoomAssociation is what a live connection is bound to once it has
// created, joined or rejoined a session. It is the only state consulted
// when the connection drops.
type RoomAssociation struct {
	Code     string
	PlayerID string
}

// SocketServer is a struct that contains the socket.io server and the
// connection bookkeeping: socket id -> live socket, and socket id -> the
// (session code, player id) pair used for disconnect cleanup.
type SocketServer struct {
	Sio_server   *socket.Server
	connections  map[socket.SocketId]*socket.Socket
	associations map[socket.SocketId]RoomAssociation
	mutex        sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		connections:  make(map[socket.SocketId]*socket.Socket),
		associations: make(map[socket.SocketId]RoomAssociation),
	}
}

func (s *SocketServer) AddConnection(client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connections[client.Id()] = client
}

// RemoveConnection drops both the socket and its association.
func (s *SocketServer) RemoveConnection(id socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.connections, id)
	delete(s.associations, id)
}

func (s *SocketServer) GetConnection(id socket.SocketId) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.connections[id]
	return client, exists
}

func (s *SocketServer) Associate(id socket.SocketId, code string, playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.associations[id] = RoomAssociation{Code: code, PlayerID: playerID}
}

func (s *SocketServer) GetAssociation(id socket.SocketId) (RoomAssociation, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	assoc, exists := s.associations[id]
	return assoc, exists
}

func (s *SocketServer) ClearAssociation(id socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.associations, id)
}

// The four methods below satisfy the lifecycle engine's RoomNotifier.

func (s *SocketServer) Join(connID string, code string) {
	if client, exists := s.GetConnection(socket.SocketId(connID)); exists {
		client.Join(socket.Room(code))
	}
}

func (s *SocketServer) Leave(connID string, code string) {
	if client, exists := s.GetConnection(socket.SocketId(connID)); exists {
		client.Leave(socket.Room(code))
	}
}

func (s *SocketServer) SessionUpdate(code string, sess *models.Session) {
	s.Sio_server.To(socket.Room(code)).Emit("sessionUpdate", sess)
}

func (s *SocketServer) SessionStarted(code string) {
	s.Sio_server.To(socket.Room(code)).Emit("sessionStarted")
}
