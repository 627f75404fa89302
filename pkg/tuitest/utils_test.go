package tuitest

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[31mred\x1b[0m   \n\x1b[1mbold\x1b[0m\n\n"
	assert.Equal(t, "red\nbold", StripANSI(in))
}

func TestKeyPress(t *testing.T) {
	msg, ok := KeyPress('s').(tea.KeyPressMsg)
	require.True(t, ok)
	assert.Equal(t, "s", msg.String())
}

func TestKeyCtrl(t *testing.T) {
	msg, ok := KeyCtrl('c').(tea.KeyPressMsg)
	require.True(t, ok)
	assert.Equal(t, "ctrl+c", msg.String())
}

func TestWindowSize(t *testing.T) {
	msg := WindowSize(80, 24)
	assert.Equal(t, 80, msg.Width)
	assert.Equal(t, 24, msg.Height)
}
