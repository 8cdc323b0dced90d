package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestHelpRendersKeys(t *testing.T) {
	m := New(70, 30)
	content := m.Content()
	assert.Contains(t, content, "Moving around")
	assert.Contains(t, content, "jump to today")
	assert.NotContains(t, content, "\x1b[")
	assert.NotEmpty(t, m.View())
}

func TestHelpClampsSize(t *testing.T) {
	m := New(5, 2)
	assert.Equal(t, 32, m.width)
	assert.Equal(t, 8, m.height)

	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Same(t, m, next)
}
