package frames

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
)

// DecodeBase64JPEG decodes a base64-encoded JPEG into an image. Callers get
// an explicit error instead of a nil sentinel, so the fallback to an
// unannotated frame is their decision.
func DecodeBase64JPEG(encoded string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 frame: %w", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode jpeg frame: %w", err)
	}
	return img, nil
}

// EncodeJPEGBase64 encodes an image as a base64 JPEG string for transport.
func EncodeJPEGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("failed to encode jpeg frame: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
