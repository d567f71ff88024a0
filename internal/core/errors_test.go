package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	base := errors.New("unknown profile \"laptop\"")
	err := ResolutionError(base, "resolve profile")

	assert.True(t, IsKind(err, KindResolution))
	assert.False(t, IsKind(err, KindLoad))
	assert.ErrorIs(t, err, base)

	wrapped := fmt.Errorf("startup: %w", err)
	assert.True(t, IsKind(wrapped, KindResolution))
	assert.Contains(t, err.Error(), "[RESOLUTION] resolve profile")

	assert.Nil(t, LoadError(nil, "nothing"))
}

func TestGenerateDiff(t *testing.T) {
	d := GenerateDiff("/*\n!/a/**\n", "/*\n!/b/**\n")

	assert.Contains(t, d, "  /*")
	assert.Contains(t, d, "- !/a/**")
	assert.Contains(t, d, "+ !/b/**")
	assert.Equal(t, "", strings.TrimSpace(GenerateDiff("", "")))
}
