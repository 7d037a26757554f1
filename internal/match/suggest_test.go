package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var subcategories = []string{"json_to_xml", "xml_to_yaml", "text_to_toml", "text_to_yaml"}

func TestClosest(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"json_to_xlm", "json_to_xml", true},
		{"text-to-toml", "text_to_toml", true},
		{"TextToYml", "text_to_yaml", true},
		{"csv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.name, subcategories)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Closest("anything", nil)
	assert.False(t, ok)
}

func TestHint(t *testing.T) {
	assert.Equal(t, ` (did you mean "hard"?)`, Hint("harf", []string{"general", "hard", "toml_aug"}))
	assert.Empty(t, Hint("zzzz", []string{"general", "hard", "toml_aug"}))
}
