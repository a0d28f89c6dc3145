package ml

import (
	"context"
	"image"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

// Risk thresholds on the hot-pixel ratio. Tuned on a handful of wildfire
// photos against ordinary landscape shots; not a real model, but enough to
// separate "forest" from "forest on fire".
const (
	mediumThreshold   = 0.02
	highThreshold     = 0.08
	criticalThreshold = 0.20

	// Sampling stride keeps large uploads cheap; 64k samples is plenty.
	maxSamplesPerAxis = 256
)

// BaselinePredictor scores the share of flame-colored pixels in the image.
// A pixel counts as "hot" when it is bright and strongly ordered red over
// green over blue, which is what open flame and fresh burn glow look like.
type BaselinePredictor struct{}

func NewBaselinePredictor() *BaselinePredictor {
	return &BaselinePredictor{}
}

func (p *BaselinePredictor) Name() string { return "baseline" }

func (p *BaselinePredictor) Predict(ctx context.Context, img image.Image) (types.Prediction, error) {
	ratio := hotPixelRatio(img)

	var risk types.RiskLevel
	switch {
	case ratio >= criticalThreshold:
		risk = types.RiskCritical
	case ratio >= highThreshold:
		risk = types.RiskHigh
	case ratio >= mediumThreshold:
		risk = types.RiskMedium
	default:
		risk = types.RiskLow
	}

	return types.Prediction{
		RiskLevel:       risk,
		Confidence:      confidenceFor(risk, ratio),
		Recommendations: RecommendationsFor(risk),
	}, nil
}

// hotPixelRatio samples the image on a stride and returns the fraction of
// sampled pixels that look like flame.
func hotPixelRatio(img image.Image) float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0
	}

	strideX := width / maxSamplesPerAxis
	if strideX < 1 {
		strideX = 1
	}
	strideY := height / maxSamplesPerAxis
	if strideY < 1 {
		strideY = 1
	}

	var sampled, hot int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += strideY {
		for x := bounds.Min.X; x < bounds.Max.X; x += strideX {
			r, g, b, _ := img.At(x, y).RGBA()
			sampled++
			// 16-bit channels from RGBA(); flame pixels are bright red with
			// a visible red>green>blue gradient.
			if r > 0x9000 && r > g+0x2000 && g > b {
				hot++
			}
		}
	}
	if sampled == 0 {
		return 0
	}
	return float64(hot) / float64(sampled)
}

// confidenceFor maps the distance from the classification threshold into a
// bounded confidence. Mid-band classifications get less confident scores.
func confidenceFor(risk types.RiskLevel, ratio float64) float64 {
	var c float64
	switch risk {
	case types.RiskCritical:
		c = 0.85 + ratio/2
	case types.RiskHigh:
		c = 0.75 + (ratio-highThreshold)*2
	case types.RiskMedium:
		c = 0.65 + (ratio-mediumThreshold)*2
	default:
		c = 0.90 - ratio*10 // clean images score near 0.9
	}
	if c > 0.99 {
		c = 0.99
	}
	if c < 0.50 {
		c = 0.50
	}
	return c
}

// RecommendationsFor returns the operator guidance shown next to a
// prediction, one set per risk level.
func RecommendationsFor(risk types.RiskLevel) []string {
	switch risk {
	case types.RiskCritical:
		return []string{
			"Evacuate area immediately",
			"Dispatch fire response teams",
			"De-energize power lines in affected zone",
		}
	case types.RiskHigh:
		return []string{
			"Alert fire response teams",
			"Prepare evacuation routes",
			"Secure critical infrastructure",
		}
	case types.RiskMedium:
		return []string{
			"Monitor area for 24 hours",
			"Prepare evacuation routes",
			"Alert nearby infrastructure",
		}
	default:
		return []string{
			"No immediate action required",
			"Continue routine monitoring",
		}
	}
}
