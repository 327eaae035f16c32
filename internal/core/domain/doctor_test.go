package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRut(t *testing.T) {
	assert.Equal(t, "12345678K", NormalizeRut("12.345.678-k"))
	assert.Equal(t, "12345678K", NormalizeRut("12345678K"))
	assert.Equal(t, "98765432", NormalizeRut(" 9.876.543-2 "))
	assert.Equal(t, "", NormalizeRut(""))
}

func TestSameRut(t *testing.T) {
	assert.True(t, SameRut("12.345.678-k", "12345678K"))
	assert.False(t, SameRut("12345678K", "12345679K"))
}
