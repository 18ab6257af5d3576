package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
	"github.com/cardlink/cardlink-services/internal/apisvc/store"
	"github.com/cardlink/cardlink-services/internal/ocr"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const maxCardImageBytes = 20 << 20

// OCRResult is the payload of POST /api/ocr.
type OCRResult struct {
	Parsed  ocr.Parsed `json:"parsed"`
	RawText string     `json:"rawText"`
}

// OCRService fetches the uploaded card image, extracts its text
// through the vision engine and archives the run. Results are cached
// per image URL; cache and archive failures are logged, not fatal.
type OCRService struct {
	engine ocr.Engine
	cache  *store.OCRCache
	scans  *store.ScanStore
	httpc  *http.Client
}

func NewOCRService(engine ocr.Engine, cache *store.OCRCache, scans *store.ScanStore) *OCRService {
	return &OCRService{
		engine: engine,
		cache:  cache,
		scans:  scans,
		httpc:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *OCRService) Process(ctx context.Context, userID, imageURL string) (*OCRResult, error) {
	if s.cache != nil {
		var cached OCRResult
		hit, err := s.cache.Get(ctx, imageURL, &cached)
		if err != nil {
			log.Warnf("ocr cache read failed: %v", err)
		}
		if hit {
			return &cached, nil
		}
	}

	imageData, err := s.fetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	rawText, err := s.engine.ExtractText(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("OCR processing failed: %v", err)
	}

	result := &OCRResult{
		Parsed:  ocr.ParseFields(rawText),
		RawText: rawText,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, imageURL, result); err != nil {
			log.Warnf("ocr cache write failed: %v", err)
		}
	}
	if s.scans != nil {
		scan := models.Scan{
			ScanID:    uuid.New().String(),
			UserID:    userID,
			ImageURL:  imageURL,
			RawText:   rawText,
			Parsed:    result.Parsed,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.scans.Insert(ctx, scan); err != nil {
			log.Warnf("scan archive write failed: %v", err)
		}
	}

	return result, nil
}

// RecentScans returns the user's archived OCR runs.
func (s *OCRService) RecentScans(ctx context.Context, userID string) ([]models.Scan, error) {
	if s.scans == nil {
		return []models.Scan{}, nil
	}
	return s.scans.RecentByUser(ctx, userID, 20)
}

func (s *OCRService) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %v", err)
	}

	res, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch card image: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not fetch card image: status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxCardImageBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read card image: %v", err)
	}
	return data, nil
}
