package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConceptIDFromString(t *testing.T) {
	valid := []string{"f00aa5b4", "123Za", "_-123uioP09..-_", "id-0f2a"}
	for _, id := range valid {
		t.Run("valid "+id, func(t *testing.T) {
			got, err := NewConceptIDFromString(id)
			require.NoError(t, err)
			assert.Equal(t, id, got.String())
			assert.True(t, IsValidConceptID(id))
		})
	}

	invalid := []string{"&", " ", "*", "$", "#", "abc def", "a&b", "ümlaut"}
	for _, id := range invalid {
		t.Run("invalid "+id, func(t *testing.T) {
			_, err := NewConceptIDFromString(id)
			require.Error(t, err)
			assert.Contains(t, err.Error(), id)
			assert.False(t, IsValidConceptID(id))
		})
	}

	_, err := NewConceptIDFromString("")
	assert.Error(t, err)
}

func TestNewConceptID(t *testing.T) {
	a := NewConceptID("id-")
	b := NewConceptID("id-")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a.String(), "id-"))
	assert.Len(t, a.String(), len("id-")+32)
	assert.True(t, IsValidConceptID(a.String()))
	assert.False(t, a.IsZero())
}

func TestImageKey(t *testing.T) {
	data := []byte("some image bytes")

	key := ImageKey("images/", data, ".png")
	assert.Equal(t, key, ImageKey("images/", data, ".png"))
	assert.Equal(t, key, ImageKey("images/", append([]byte(nil), data...), "png"))
	assert.True(t, strings.HasPrefix(key, "images/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Len(t, key, len("images/")+40+len(".png"))

	assert.NotEqual(t, key, ImageKey("images/", []byte("other bytes"), ".png"))
	assert.Equal(t, "images/da39a3ee5e6b4b0d3255bfef95601890afd80709", ImageKey("images/", nil, ""))

	assert.True(t, IsImageKey("images/", key))
	assert.False(t, IsImageKey("images/", "images/"))
	assert.False(t, IsImageKey("images/", "properties/x"))

	assert.True(t, IsContentKey("images/", key))
	assert.True(t, IsContentKey("images/", ImageKey("images/", data, "")))
	assert.False(t, IsContentKey("images/", "images/logo.png"))
	assert.False(t, IsContentKey("images/", "images/DA39A3EE5E6B4B0D3255BFEF95601890AFD80709.png"))
	assert.False(t, IsContentKey("images/", "images/da39a3ee5e6b4b0d3255bfef95601890afd80709x"))
	assert.False(t, IsContentKey("images/", "images/da39a3ee5e6b4b0d3255bfef95601890afd80709.png/x"))
	assert.False(t, IsContentKey("other/", key))
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Business Actor", "Business Actor"},
		{"crlf is one unit", "line\r\nfeed", "line feed"},
		{"lf", "line\nfeed", "line feed"},
		{"cr", "line\rfeed", "line feed"},
		{"tab", "tab\tbed", "tab bed"},
		{"runs are not collapsed", "a\n\nb", "a  b"},
		{"cr cr", "a\r\rb", "a  b"},
		{"lf cr", "a\n\rb", "a  b"},
		{"trimmed", "  padded\t", "padded"},
		{"only control", "\r\n\t", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalise(tt.in))
		})
	}
}
