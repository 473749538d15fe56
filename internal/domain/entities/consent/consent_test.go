package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	record := Defaults()

	assert.True(t, record.Necessary)
	assert.False(t, record.Analytics)
	assert.False(t, record.Marketing)
}

func TestNormalizeForcesNecessary(t *testing.T) {
	record := Record{Necessary: false, Analytics: true}

	normalized := record.Normalize()

	assert.True(t, normalized.Necessary, "necessary must be granted regardless of input")
	assert.True(t, normalized.Analytics)
	assert.False(t, normalized.Marketing)
}
