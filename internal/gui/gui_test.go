package gui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tomz197/fireworks/internal/input"
)

func pressed(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, p := range keys {
			if p == k {
				return true
			}
		}
		return false
	}
}

func TestReadKeys(t *testing.T) {
	assert.Equal(t, input.Input{}, readKeys(pressed(), 0))
	assert.Equal(t, input.Input{Triggers: 3}, readKeys(pressed(ebiten.KeySpace, ebiten.KeyEnter), 1))
	assert.Equal(t, input.Input{Quit: true}, readKeys(pressed(ebiten.KeyQ), 0))
	assert.Equal(t, input.Input{Difficulty: 2}, readKeys(pressed(ebiten.KeyDigit2), 0))
	assert.Equal(t, input.Input{Restart: true}, readKeys(pressed(ebiten.KeyR), 0))
}

func TestReadKeysPauseToggles(t *testing.T) {
	assert.True(t, readKeys(pressed(ebiten.KeyP), 0).Pause)
	assert.True(t, readKeys(pressed(ebiten.KeyEscape), 0).Pause)
	assert.False(t, readKeys(pressed(ebiten.KeyP, ebiten.KeyEscape), 0).Pause)
}
