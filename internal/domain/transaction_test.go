package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownRegion(t *testing.T) {
	for _, r := range Regions {
		assert.True(t, KnownRegion(string(r)), string(r))
	}
	assert.False(t, KnownRegion("north"))
	assert.False(t, KnownRegion("Midlands"))
	assert.False(t, KnownRegion(""))
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name     string
		expected float64
		actual   float64
		want     bool
	}{
		{"exact", 100, 100, true},
		{"one percent under", 100, 99, true},
		{"one percent over", 100, 101, true},
		{"just beyond one percent", 100, 101.02, false},
		{"way off", 100, 150, false},
		{"absolute floor near zero", 0.5, 0.51, true},
		{"beyond floor near zero", 0.5, 0.52, false},
		{"negative expected", -100, -99.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinTolerance(tt.expected, tt.actual))
		})
	}
}
