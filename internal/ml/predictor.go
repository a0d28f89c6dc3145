// Package ml holds the image risk classifier behind the prediction endpoints.
// The predictor is loaded once at startup and shared by all requests.
package ml

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Register decoders for the formats the frontend uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

// Predictor classifies a decoded image into the fixed risk vocabulary.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, img image.Image) (types.Prediction, error)
}

// New returns the predictor selected by config. "baseline" (or empty) is the
// built-in flame-hue classifier; anything else is rejected so a typo in
// config fails at startup rather than at first request.
func New(provider string) (Predictor, error) {
	switch provider {
	case "", "baseline":
		return NewBaselinePredictor(), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}

// DecodeImage decodes uploaded bytes into an image, rejecting empty or
// unreadable payloads.
func DecodeImage(contents []byte) (image.Image, string, error) {
	if len(contents) == 0 {
		return nil, "", fmt.Errorf("empty image file")
	}
	img, format, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, "", fmt.Errorf("cannot identify image file: %w", err)
	}
	return img, format, nil
}
