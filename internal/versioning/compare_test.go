package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		installed string
		latest    string
		want      Direction
	}{
		{"1.0.0", "1.1.0", DirectionUpgrade},
		{"1.10.0", "1.9.0", DirectionDowngrade},
		{"2.0.0", "2.0.0", DirectionReinstall},
		{"v1.2.3", "1.2.3", DirectionReinstall},
		{"unknown", "1.0.0", DirectionUpgrade},
		{"1.0.0-beta.1", "1.0.0", DirectionUpgrade},
		{"1.0.0", "not-a-version", DirectionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.installed+"->"+tt.latest, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareVersions(tt.installed, tt.latest))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("1.2.3"))
	assert.True(t, IsValid("v1.2.3"))
	assert.False(t, IsValid("unknown"))
	assert.False(t, IsValid(""))
}
