package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalonCategories(t *testing.T) {
	t.Parallel()

	s := NewSalon("Studio", "studio")
	assert.Empty(t, s.DisabledCategories())

	s.SkinEnabled = false
	assert.False(t, s.CategoryEnabled(CategorySkin))
	assert.True(t, s.CategoryEnabled(CategoryHair))
	assert.Equal(t, []CategoryKind{CategorySkin}, s.DisabledCategories())
	assert.False(t, s.CategoryEnabled(CategoryKind("massage")))
}
