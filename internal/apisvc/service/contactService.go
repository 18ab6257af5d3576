package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cardlink/cardlink-services/internal/apisvc/broker"
	"github.com/cardlink/cardlink-services/internal/apisvc/models"
	"github.com/cardlink/cardlink-services/internal/apisvc/store"

	"github.com/google/uuid"
)

// ContactService owns contact CRUD and publishes change events.
type ContactService struct {
	contactStore *store.ContactStore
	broker       *broker.Broker
}

func NewContactService(contactStore *store.ContactStore, b *broker.Broker) *ContactService {
	return &ContactService{
		contactStore: contactStore,
		broker:       b,
	}
}

func (s *ContactService) List(ctx context.Context, userID string) ([]models.Contact, error) {
	return s.contactStore.ListByUser(ctx, userID)
}

func (s *ContactService) Get(ctx context.Context, userID, id string) (*models.Contact, error) {
	return s.contactStore.GetByID(ctx, userID, id)
}

func (s *ContactService) Create(ctx context.Context, userID string, c models.Contact) (*models.Contact, error) {
	c.ID = uuid.New().String()
	c.UserID = userID

	created, err := s.contactStore.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.broker.ContactCreated(created)
	return created, nil
}

// Replace fully overwrites the contact: PUT semantics.
func (s *ContactService) Replace(ctx context.Context, userID, id string, c models.Contact) (*models.Contact, error) {
	c.ID = id
	c.UserID = userID

	updated, err := s.contactStore.Replace(ctx, c)
	if err != nil {
		return nil, err
	}
	s.broker.ContactUpdated(updated)
	return updated, nil
}

// Patch merges the raw partial body over the stored contact and
// replaces it: PATCH semantics. Unknown keys are ignored.
func (s *ContactService) Patch(ctx context.Context, userID, id string, patch []byte) (*models.Contact, error) {
	current, err := s.contactStore.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if err := json.Unmarshal(patch, &merged); err != nil {
		return nil, fmt.Errorf("invalid patch body: %v", err)
	}
	merged.ID = current.ID
	merged.UserID = current.UserID

	updated, err := s.contactStore.Replace(ctx, merged)
	if err != nil {
		return nil, err
	}
	s.broker.ContactUpdated(updated)
	return updated, nil
}

// SetFavorite flips only the favorite flag.
func (s *ContactService) SetFavorite(ctx context.Context, userID, id string, favorite bool) (*models.Contact, error) {
	current, err := s.contactStore.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	current.IsFavorite = favorite
	updated, err := s.contactStore.Replace(ctx, *current)
	if err != nil {
		return nil, err
	}
	s.broker.ContactUpdated(updated)
	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, id string) error {
	if err := s.contactStore.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.broker.ContactDeleted(userID, id)
	return nil
}
