package broker

import (
	"encoding/json"

	"github.com/cardlink/cardlink-services/internal/comm"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetUserSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool), fncGetUserSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetUserSockets: fncGetUserSockets,
	}
}

// consume contact events from the api service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessages receives a contact event and fans it out to every
// socket the owning user has connected.
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	event := &comm.ContactEvent{}
	if err := json.Unmarshal(msgNats.Data, event); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch event.Type {
	case comm.EventContactCreated, comm.EventContactUpdated, comm.EventContactDeleted:
		b.sendEvent(event)
	default:
		log.Error("Unknown message")
		return
	}
}

func (b *Broker) sendEvent(event *comm.ContactEvent) {
	sockets, ok := b.GetUserSockets(event.UserID)
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal contact event: %v", err)
		return
	}
	m := &comm.WSMessage{Type: event.Type, Data: data}

	for _, socketId := range sockets {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Println(err)
			}
		}
	}
}
