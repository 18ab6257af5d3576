package crop

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Decode reads a card photo in any supported format. WebP is sniffed
// by its RIFF header; everything else goes through imaging.
func Decode(data []byte) (image.Image, error) {
	if isWebP(data) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode webp: %v", err)
		}
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %v", err)
	}
	return img, nil
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// Apply cuts the mapped region out of the source image. The region is
// re-clamped against the actual bounds so a stale region can never
// produce an empty crop.
func Apply(img image.Image, reg Region) image.Image {
	b := img.Bounds()
	ox := clampInt(reg.OriginX, 0, b.Dx()-1)
	oy := clampInt(reg.OriginY, 0, b.Dy()-1)
	w := clampInt(reg.Width, 1, b.Dx()-ox)
	h := clampInt(reg.Height, 1, b.Dy()-oy)
	return imaging.Crop(img, image.Rect(ox, oy, ox+w, oy+h))
}

// EncodeJPEG renders the cropped card at full quality, the format the
// upload endpoint expects.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(100)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %v", err)
	}
	return buf.Bytes(), nil
}
