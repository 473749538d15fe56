package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitIntentSignalQualifies(t *testing.T) {
	tests := []struct {
		name     string
		signal   ExitIntentSignal
		expected bool
	}{
		{
			name:     "desktop pointer moving inside edge band",
			signal:   ExitIntentSignal{PointerY: 5, Moving: true, Desktop: true},
			expected: true,
		},
		{
			name:     "pointer exactly at top edge",
			signal:   ExitIntentSignal{PointerY: 0, Moving: true, Desktop: true},
			expected: true,
		},
		{
			name:     "pointer just inside the band",
			signal:   ExitIntentSignal{PointerY: 9.99, Moving: true, Desktop: true},
			expected: true,
		},
		{
			name:     "pointer exactly at band boundary",
			signal:   ExitIntentSignal{PointerY: 10, Moving: true, Desktop: true},
			expected: false,
		},
		{
			name:     "pointer below the band",
			signal:   ExitIntentSignal{PointerY: 200, Moving: true, Desktop: true},
			expected: false,
		},
		{
			name:     "negative pointer position",
			signal:   ExitIntentSignal{PointerY: -1, Moving: true, Desktop: true},
			expected: false,
		},
		{
			name:     "pointer at rest",
			signal:   ExitIntentSignal{PointerY: 5, Moving: false, Desktop: true},
			expected: false,
		},
		{
			name:     "touch device",
			signal:   ExitIntentSignal{PointerY: 5, Moving: true, Desktop: false},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.signal.Qualifies(10))
		})
	}
}

func TestScrollDepthSignalQualifies(t *testing.T) {
	tests := []struct {
		name     string
		signal   ScrollDepthSignal
		expected bool
	}{
		{
			name:     "just past the threshold",
			signal:   ScrollDepthSignal{ScrollY: 420, ViewportHeight: 800, DocumentHeight: 2000}, // 0.61
			expected: true,
		},
		{
			name:     "just short of the threshold",
			signal:   ScrollDepthSignal{ScrollY: 380, ViewportHeight: 800, DocumentHeight: 2000}, // 0.59
			expected: false,
		},
		{
			name:     "exactly at the threshold",
			signal:   ScrollDepthSignal{ScrollY: 400, ViewportHeight: 800, DocumentHeight: 2000}, // 0.60, strictly-greater check
			expected: false,
		},
		{
			name:     "fully scrolled",
			signal:   ScrollDepthSignal{ScrollY: 1200, ViewportHeight: 800, DocumentHeight: 2000},
			expected: true,
		},
		{
			name:     "top of the page",
			signal:   ScrollDepthSignal{ScrollY: 0, ViewportHeight: 800, DocumentHeight: 2000},
			expected: false,
		},
		{
			name:     "degenerate zero-height document",
			signal:   ScrollDepthSignal{ScrollY: 500, ViewportHeight: 800, DocumentHeight: 0},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.signal.Qualifies(0.6))
		})
	}
}

func TestScrollDepthCalculation(t *testing.T) {
	signal := ScrollDepthSignal{ScrollY: 600, ViewportHeight: 400, DocumentHeight: 2000}
	assert.InDelta(t, 0.5, signal.Depth(), 0.0001)

	empty := ScrollDepthSignal{}
	assert.Zero(t, empty.Depth())
}
