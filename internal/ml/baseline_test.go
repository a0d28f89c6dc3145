package ml

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillImage(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBaselinePredictor_Predict(t *testing.T) {
	p := NewBaselinePredictor()
	ctx := context.Background()

	t.Run("flame-colored image classifies critical", func(t *testing.T) {
		img := fillImage(color.RGBA{R: 255, G: 120, B: 20, A: 255})

		pred, err := p.Predict(ctx, img)
		require.NoError(t, err)
		assert.Equal(t, types.RiskCritical, pred.RiskLevel)
		assert.GreaterOrEqual(t, pred.Confidence, 0.5)
		assert.LessOrEqual(t, pred.Confidence, 0.99)
		assert.NotEmpty(t, pred.Recommendations)
	})

	t.Run("green landscape classifies low", func(t *testing.T) {
		img := fillImage(color.RGBA{R: 30, G: 160, B: 60, A: 255})

		pred, err := p.Predict(ctx, img)
		require.NoError(t, err)
		assert.Equal(t, types.RiskLow, pred.RiskLevel)
	})

	t.Run("prediction is deterministic", func(t *testing.T) {
		img := fillImage(color.RGBA{R: 255, G: 100, B: 0, A: 255})

		first, err := p.Predict(ctx, img)
		require.NoError(t, err)
		second, err := p.Predict(ctx, img)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("risk level stays in the fixed vocabulary", func(t *testing.T) {
		colors := []color.RGBA{
			{R: 255, G: 90, B: 10, A: 255},
			{R: 10, G: 10, B: 10, A: 255},
			{R: 200, G: 200, B: 200, A: 255},
			{R: 255, G: 0, B: 0, A: 255},
		}
		for _, c := range colors {
			pred, err := p.Predict(ctx, fillImage(c))
			require.NoError(t, err)
			assert.True(t, types.ValidRiskLevel(string(pred.RiskLevel)),
				"unexpected risk level %q", pred.RiskLevel)
		}
	})
}

func TestDecodeImage(t *testing.T) {
	t.Run("valid png decodes", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, fillImage(color.RGBA{R: 1, G: 2, B: 3, A: 255})))

		img, format, err := DecodeImage(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 64, img.Bounds().Dx())
	})

	t.Run("garbage bytes are rejected", func(t *testing.T) {
		_, _, err := DecodeImage([]byte("this is not an image"))
		require.Error(t, err)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		_, _, err := DecodeImage(nil)
		require.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	t.Run("baseline provider", func(t *testing.T) {
		p, err := New("baseline")
		require.NoError(t, err)
		assert.Equal(t, "baseline", p.Name())
	})

	t.Run("empty provider defaults to baseline", func(t *testing.T) {
		p, err := New("")
		require.NoError(t, err)
		assert.Equal(t, "baseline", p.Name())
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := New("tensorflow")
		require.Error(t, err)
	})
}
