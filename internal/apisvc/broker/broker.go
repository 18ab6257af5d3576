package broker

import (
	"encoding/json"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
	"github.com/cardlink/cardlink-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker publishes contact change events for the sync service. A nil
// Broker (or one with no connection) is a no-op so the API keeps
// working when NATS is down.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) publish(evt comm.ContactEvent) {
	if b == nil || b.Conn == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Errorf("Error marshaling contact event: %s", err)
		return
	}
	if err := b.Conn.Publish(comm.TopicContactEvents, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", comm.TopicContactEvents, err)
	}
}

func (b *Broker) ContactCreated(c *models.Contact) {
	b.publish(comm.ContactEvent{
		Type: comm.EventContactCreated, UserID: c.UserID, ContactID: c.ID, Contact: c,
	})
}

func (b *Broker) ContactUpdated(c *models.Contact) {
	b.publish(comm.ContactEvent{
		Type: comm.EventContactUpdated, UserID: c.UserID, ContactID: c.ID, Contact: c,
	})
}

func (b *Broker) ContactDeleted(userID, contactID string) {
	b.publish(comm.ContactEvent{
		Type: comm.EventContactDeleted, UserID: userID, ContactID: contactID,
	})
}
