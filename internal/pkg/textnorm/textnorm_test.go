package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  JUAN PEREZ  ",
			expected: "juan perez",
		},
		{
			name:     "removes diacritics",
			input:    "José Ñañez García",
			expected: "jose nanez garcia",
		},
		{
			name:     "strips parenthesized noise",
			input:    "Maria Lopez (Invitada)",
			expected: "maria lopez",
		},
		{
			name:     "strips academic title prefix",
			input:    "lic Carla Torres",
			expected: "carla torres",
		},
		{
			name:     "strips title exposed by punctuation removal",
			input:    "Dra. María del Carmen Rodríguez López",
			expected: "maria rodriguez lopez",
		},
		{
			name:     "strips university acronym prefix",
			input:    "UNPRG - Pedro Ruiz",
			expected: "pedro ruiz",
		},
		{
			name:     "strips short id prefix",
			input:    "abc_juan perez",
			expected: "juan perez",
		},
		{
			name:     "removes digits and symbols",
			input:    "juan perez 123 #!",
			expected: "juan perez",
		},
		{
			name:     "collapses long names to first plus last two tokens",
			input:    "juan carlos alberto perez gomez",
			expected: "juan perez gomez",
		},
		{
			name:     "keeps four token names whole",
			input:    "juan carlos perez gomez",
			expected: "juan carlos perez gomez",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeNeverEmptyForNonEmptyInput(t *testing.T) {
	// When stripping eats the whole string the lowercased original comes back.
	inputs := []string{"123", "(...)", "!!!", "Ing.", "ix-"}
	for _, input := range inputs {
		assert.NotEmpty(t, Normalize(input), "input %q", input)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Dra. María del Carmen Rodríguez López",
		"UNPRG - José Quiroz",
		"participante_juan perez",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestStripSearchText(t *testing.T) {
	assert.Equal(t, "jose nanez", StripSearchText("José Ñañez"))
	assert.Equal(t, "perez 123", StripSearchText("PÉREZ 123"))
}
