package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Salão da Ana":       "salao-da-ana",
		"  Studio  Beleza! ": "studio-beleza",
		"Crème & Brûlée":     "creme-brulee",
		"---":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	got, err := NormalizeSlug("  Studio-Ana ")
	require.NoError(t, err)
	assert.Equal(t, "studio-ana", got)

	for _, bad := range []string{"", "   ", "studio ana", "-studio", "studio--ana", "ana_01"} {
		_, err := NormalizeSlug(bad)
		assert.Error(t, err, bad)
	}
}

func TestPhones(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidatePhone("+55 (11) 91234-5678"))
	assert.True(t, ValidatePhone("11912345678"))
	assert.False(t, ValidatePhone("0123"))
	assert.False(t, ValidatePhone("phone"))

	assert.True(t, IsE164("+55 11 91234-5678"))
	assert.False(t, IsE164("11912345678"))
	assert.Equal(t, "+5511912345678", CleanPhone("+55 (11) 91234-5678"))
}
