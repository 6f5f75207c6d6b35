package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("abc", 5))
	assert.Equal(t, 5, ParseIntDefault("2.5", 5))
	assert.Equal(t, 12, ParseIntDefault(" 12 ", 5))
	assert.Equal(t, -3, ParseIntDefault("-3", 5))
}
