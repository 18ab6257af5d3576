package models

import (
	"time"

	"github.com/cardlink/cardlink-services/internal/ocr"
)

// Scan is one archived OCR run, stored in MongoDB. The parsed payload
// is free-form, so it lives in the document store rather than a table.
type Scan struct {
	ScanID    string     `json:"scan_id" bson:"scan_id"`
	UserID    string     `json:"-" bson:"user_id"`
	ImageURL  string     `json:"image_url" bson:"image_url"`
	RawText   string     `json:"raw_text" bson:"raw_text"`
	Parsed    ocr.Parsed `json:"parsed" bson:"parsed"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}
