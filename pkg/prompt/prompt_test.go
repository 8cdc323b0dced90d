package prompt

import (
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"

	"tableflip.dev/moodtrack/pkg/mood"
)

func TestEmotionItems(t *testing.T) {
	items := emotionItems([]string{"tired", "Custom"})
	assert.True(t, items[0].Done)
	assert.Len(t, items, len(mood.Emotions)+1)

	on := map[string]bool{}
	for _, it := range items[1:] {
		on[it.Name] = it.On
	}
	assert.True(t, on["Tired"])
	assert.False(t, on["Happy"])
}

func TestCancelled(t *testing.T) {
	assert.ErrorIs(t, cancelled(promptui.ErrInterrupt), ErrCancelled)
	assert.ErrorIs(t, cancelled(promptui.ErrEOF), ErrCancelled)
	assert.NotErrorIs(t, cancelled(promptui.ErrAbort), ErrCancelled)
}
