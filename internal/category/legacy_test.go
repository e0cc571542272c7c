package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcwtools/paintsum/internal/signal"
)

func TestLegacyClassifier(t *testing.T) {
	c := NewLegacyClassifier(signal.DefaultConfig())

	tests := []struct {
		name       string
		task       string
		wantBucket string
	}{
		{
			name:       "exterior prime",
			task:       "Painting - Exterior Prime/Fascia (EXT)",
			wantBucket: LegacyExtPrime,
		},
		{
			name:       "exterior ua outranks plain exterior",
			task:       "Painting - Exterior (EXT) [UA]",
			wantBucket: LegacyExteriorUA,
		},
		{
			name:       "plain exterior",
			task:       "Painting - Exterior (EXT)",
			wantBucket: LegacyExterior,
		},
		{
			name:       "touch up",
			task:       "Touch up after carpet",
			wantBucket: LegacyTouchUp,
		},
		{
			name:       "roll walls on neutral location",
			task:       "Roll walls final",
			wantBucket: LegacyRollWallsFinal,
		},
		{
			name:       "interior",
			task:       "Painting - Interior (INT)",
			wantBucket: LegacyInterior,
		},
		{
			name:       "unknown task",
			task:       "Deliver materials",
			wantBucket: LegacyUnmapped,
		},
		{
			name:       "empty task",
			task:       "",
			wantBucket: LegacyUnmapped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, _ := c.Classify(tt.task)
			assert.Equal(t, tt.wantBucket, bucket)
		})
	}
}
