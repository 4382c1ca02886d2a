package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Tally/services/session"
	"Tally/services/socket_io/handlers"
	socketio_types "Tally/services/socket_io/types"
	"Tally/services/store"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, engine *session.Engine, sessionStore *store.Store) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)

	self := (*socketio_types.SocketServer)(sio)

	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Track the socket so the engine can join/leave it to rooms
		self.AddConnection(client)

		fmt.Println("An individual just connected!: ", client.Id())

		// Create a session and become its host
		client.On("createSession", handlers.HandleCreateSession(engine, client, self))

		// Join an open session by code
		client.On("joinSession", handlers.HandleJoinSession(engine, client, self))

		// Reconcile a reconnect with a client-held player id
		client.On("rejoinSession", handlers.HandleRejoinSession(engine, client, self))

		// Lock the lobby and begin play
		client.On("startSession", handlers.HandleStartSession(engine, client))

		// Report a player's absolute score
		client.On("updateScore", handlers.HandleUpdateScore(engine, client))

		// Leave voluntarily (hosts included)
		client.On("leaveSession", handlers.HandleLeaveSession(engine, client, self))

		// NOTE: will remove the sio connection from the maps
		client.On("disconnecting", handlers.HandleDisconnecting(engine, client, self))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				// Flush whatever the async writer still holds
				sessionStore.StopWriter()
				sessionStore.SaveSync()
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
