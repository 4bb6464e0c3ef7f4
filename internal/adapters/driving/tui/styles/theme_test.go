package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Strong))
	assert.NotEmpty(t, string(theme.Weak))
	assert.NotEmpty(t, string(theme.Warning))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Strong,
		theme.Weak,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range accents {
		assert.False(t, seen[string(c)], "duplicate colour %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_Dignity(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		dignity domain.Dignity
		want    lipgloss.TerminalColor
	}{
		{domain.DignityExalted, theme.Strong},
		{domain.DignityMulatrikona, theme.Strong},
		{domain.DignityOwnSign, theme.Strong},
		{domain.DignityFriendSign, theme.Foreground},
		{domain.DignityNeutralSign, theme.Foreground},
		{domain.DignityEnemySign, theme.Weak},
		{domain.DignityDebilitated, theme.Weak},
		{"", theme.Foreground},
	}
	for _, tt := range tests {
		t.Run(string(tt.dignity), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Dignity(tt.dignity).GetForeground())
		})
	}
}
