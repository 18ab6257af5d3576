package store

import (
	"context"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScanStore archives OCR runs in MongoDB. The parsed payload is
// free-form per card, which is why it lives in the document store.
type ScanStore struct {
	col *mongo.Collection
}

func NewScanStore(db *mongo.Database) *ScanStore {
	return &ScanStore{col: db.Collection("scans")}
}

func (s *ScanStore) Insert(ctx context.Context, scan models.Scan) error {
	_, err := s.col.InsertOne(ctx, scan)
	return err
}

// RecentByUser returns the user's latest scans, newest first.
func (s *ScanStore) RecentByUser(ctx context.Context, userID string, limit int64) ([]models.Scan, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	scans := []models.Scan{}
	if err := cur.All(ctx, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}
