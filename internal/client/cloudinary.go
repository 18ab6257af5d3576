package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Uploader sends card photos to a Cloudinary unsigned upload preset
// and returns the hosted URL the backend stores as cardImage.
type Uploader struct {
	Cloud  string
	Preset string
	Base   string
	HTTP   *http.Client
}

// NewUploader targets an unsigned upload preset in the given cloud.
func NewUploader(cloud, preset string) *Uploader {
	return &Uploader{
		Cloud:  cloud,
		Preset: preset,
		HTTP:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Upload posts the JPEG as a base64 data URI multipart field and
// returns the secure URL of the stored image.
func (u *Uploader) Upload(ctx context.Context, jpegData []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
	if err := mw.WriteField("file", dataURI); err != nil {
		return "", err
	}
	if err := mw.WriteField("upload_preset", u.Preset); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	base := u.Base
	if base == "" {
		base = "https://api.cloudinary.com"
	}
	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", base, u.Cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := u.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("unexpected upload response: %v", err)
	}
	if payload.SecureURL == "" {
		if payload.Error.Message != "" {
			return "", fmt.Errorf("upload failed: %s", payload.Error.Message)
		}
		return "", fmt.Errorf("upload failed: %s", string(data))
	}
	return payload.SecureURL, nil
}
