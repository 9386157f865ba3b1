package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"acme ads":     "Acme Ads",
		"ACME ADS":     "Acme Ads",
		"global media": "Global Media",
		"Unknown":      "Unknown",
		"x":            "X",
		"":             "",
	}
	for input, want := range tests {
		assert.Equal(t, want, TitleCase(input), "input %q", input)
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "acme", NormalizeText("  acme \t"))
	// decomposed e + combining acute composes to a single rune
	assert.Equal(t, "caf\u00e9", NormalizeText("cafe\u0301 "))
	assert.Equal(t, "a  b", NormalizeText(" a  b "))
}
