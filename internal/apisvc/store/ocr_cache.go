package store

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const ocrCacheTTL = 24 * time.Hour

// OCRCache keeps OCR results per image URL so re-scanning the same
// upload does not hit the vision model again.
type OCRCache struct {
	rdb *redis.Client
}

func NewOCRCache(rdb *redis.Client) *OCRCache {
	return &OCRCache{rdb: rdb}
}

func ocrKey(imageURL string) string {
	return fmt.Sprintf("ocr:%x", sha256.Sum256([]byte(imageURL)))
}

// Get unmarshals a cached result into out. The bool reports a hit.
func (c *OCRCache) Get(ctx context.Context, imageURL string, out interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, ocrKey(imageURL)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *OCRCache) Set(ctx context.Context, imageURL string, result interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ocrKey(imageURL), data, ocrCacheTTL).Err()
}
