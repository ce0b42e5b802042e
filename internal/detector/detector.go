package detector

import "fmt"

// Detector defines the interface for holistic landmark detection implementations.
type Detector interface {
	// Detect analyzes an RGB frame and returns the landmark groups found in it.
	// Implementations must not retain or modify the frame.
	Detect(frame Frame) (Result, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for holistic detection.
type Config struct {
	// MinDetectionConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinDetectionConfidence float64

	// MinTrackingConfidence is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConfidence float64

	// ModelComplexity selects the pose model variant (0, 1 or 2).
	ModelComplexity int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
		ModelComplexity:        1,
	}
}

// Validate checks that thresholds and model complexity are in range.
func (c Config) Validate() error {
	if c.MinDetectionConfidence < 0 || c.MinDetectionConfidence > 1 {
		return fmt.Errorf("min detection confidence %v not in [0,1]", c.MinDetectionConfidence)
	}
	if c.MinTrackingConfidence < 0 || c.MinTrackingConfidence > 1 {
		return fmt.Errorf("min tracking confidence %v not in [0,1]", c.MinTrackingConfidence)
	}
	if c.ModelComplexity < 0 || c.ModelComplexity > 2 {
		return fmt.Errorf("model complexity %d not in [0,2]", c.ModelComplexity)
	}
	return nil
}
