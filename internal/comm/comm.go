package comm

import (
	"encoding/json"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
)

// TopicContactEvents is the NATS subject the API service publishes
// contact changes on and the sync service fans out from.
const TopicContactEvents = "contact.events"

// Contact event types.
const (
	EventContactCreated = "contact.created"
	EventContactUpdated = "contact.updated"
	EventContactDeleted = "contact.deleted"
)

// WSMessage is the envelope sent to websocket clients.
type WSMessage struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

// ContactEvent is one contact change, routed to the owning user's
// connected devices.
type ContactEvent struct {
	Type      string          `json:"type"`
	UserID    string          `json:"user_id"`
	ContactID string          `json:"contact_id"`
	Contact   *models.Contact `json:"contact,omitempty"`
}
