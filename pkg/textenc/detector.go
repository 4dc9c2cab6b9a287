package textenc

import (
	"strings"

	"github.com/saintfish/chardet"
)

// EncodingGuess is a single detection result.
type EncodingGuess struct {
	Name       string
	Language   string
	Confidence int // 0..100
}

// Detector proposes an encoding for raw bytes. The second result is false
// when no candidate was produced.
type Detector interface {
	Detect(raw []byte) (EncodingGuess, bool)
}

// ChardetDetector wraps the ICU-derived statistical detector.
type ChardetDetector struct{}

// NewDetector returns the default statistical detector
func NewDetector() *ChardetDetector {
	return &ChardetDetector{}
}

// Detect runs the text detector and returns its best candidate.
func (d *ChardetDetector) Detect(raw []byte) (EncodingGuess, bool) {
	if len(raw) == 0 {
		return EncodingGuess{}, false
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil || strings.TrimSpace(result.Charset) == "" {
		return EncodingGuess{}, false
	}

	return EncodingGuess{
		Name:       result.Charset,
		Language:   result.Language,
		Confidence: result.Confidence,
	}, true
}

// DetectorFunc adapts a plain function to the Detector interface
type DetectorFunc func(raw []byte) (EncodingGuess, bool)

// Detect calls f(raw).
func (f DetectorFunc) Detect(raw []byte) (EncodingGuess, bool) {
	return f(raw)
}
