package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMatric(t *testing.T) {
	assert.Equal(t, "FCP/CSC/22/1001", NormalizeMatric("  fcp/csc/22/1001 "))
	assert.Equal(t, "", NormalizeMatric("   "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "john@student.fudma.edu.ng", NormalizeEmail(" John@Student.FUDMA.edu.ng"))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "Muhammed Ishaq", CollapseSpaces("  Muhammed \t  Ishaq\n"))
	assert.Equal(t, "", CollapseSpaces(" \t "))
}

func TestIsDigits(t *testing.T) {
	tests := map[string]bool{
		"123456": true,
		"0":      true,
		"":       false,
		"12a456": false,
		"١٢٣":    false, // non-ASCII digits
		"12 456": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsDigits(in), in)
	}
}

func TestReadAllLimit(t *testing.T) {
	b, err := ReadAllLimit(strings.NewReader("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	_, err = ReadAllLimit(bytes.NewReader(make([]byte, 6)), 5)
	assert.ErrorIs(t, err, ErrTooLarge)
}
