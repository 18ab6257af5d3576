package ws

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/cardlink/cardlink-services/internal/comm"
	"github.com/go-chi/jwtauth"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
	userMap sync.Map // to keep track of socketId with userId

	tokenAuth *jwtauth.JWTAuth
}

func NewWs() *Ws {
	return &Ws{
		tokenAuth: jwtauth.New("HS256", []byte(os.Getenv("JWT_SECRET_KEY")), nil),
	}
}

// handle socket message from clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "init":
		s.handleInit(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleInit authenticates the socket with the session token and binds
// it to the owning user so contact events can be routed to it.
func (s *Ws) handleInit(socketId string, msg *comm.WSMessage) {
	var payload struct {
		Token string `json:"token"`
	}

	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_init_data Malformed init payload %s", err)
		return
	}

	if payload.Token == "" {
		log.Error("Invalid init payload: missing token")
		return
	}

	token, err := jwtauth.VerifyToken(s.tokenAuth, payload.Token)
	if err != nil {
		log.Errorf("Rejected socket %s: invalid token: %v", socketId, err)
		s.sendTo(socketId, &comm.WSMessage{Type: "init-error"})
		return
	}

	userId, _ := token.Get("user_id")
	uid, _ := userId.(string)
	if uid == "" {
		log.Errorf("Rejected socket %s: token has no user", socketId)
		s.sendTo(socketId, &comm.WSMessage{Type: "init-error"})
		return
	}

	s.userMap.Store(socketId, uid)
	log.Infof("Socket %s bound to user %s", socketId, uid)

	s.sendTo(socketId, &comm.WSMessage{Type: "init-response", SocketId: socketId})
}

func (s *Ws) sendTo(socketId string, m *comm.WSMessage) {
	if conn, ok := s.GetConnection(socketId); ok {
		if err := conn.WriteJSON(m); err != nil {
			log.Errorf("Failed to write to socket %s: %v", socketId, err)
		}
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

// GetUserSockets lists the sockets currently bound to a user.
func (s *Ws) GetUserSockets(userId string) ([]string, bool) {
	var sockets []string
	found := false

	s.userMap.Range(func(key, value interface{}) bool {
		if value.(string) == userId {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.userMap.Delete(socketId)
}
