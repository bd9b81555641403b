package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorClampsAtEdges(t *testing.T) {
	n := NewNavigator()
	n.SetTotal(3)

	n.Navigate("up")
	assert.Equal(t, 0, n.SelectedIndex())

	n.Navigate("end")
	assert.Equal(t, 2, n.SelectedIndex())

	n.Navigate("down")
	assert.Equal(t, 2, n.SelectedIndex())

	n.Navigate("home")
	assert.Equal(t, 0, n.SelectedIndex())
}

func TestNavigatorScrollsViewport(t *testing.T) {
	n := NewNavigator()
	n.SetViewportHeight(3)
	n.SetTotal(10)

	n.Move(4)
	assert.Equal(t, 4, n.SelectedIndex())
	assert.Equal(t, 2, n.ViewportOffset())

	n.Navigate("pagedown")
	assert.Equal(t, 6, n.SelectedIndex())
	assert.Equal(t, 4, n.ViewportOffset())

	n.Navigate("end")
	assert.Equal(t, 9, n.SelectedIndex())
	assert.Equal(t, 7, n.ViewportOffset())

	n.Navigate("pageup")
	assert.Equal(t, 7, n.SelectedIndex())
	assert.Equal(t, 7, n.ViewportOffset())
}

func TestNavigatorShrinkingTotal(t *testing.T) {
	n := NewNavigator()
	n.SetViewportHeight(2)
	n.SetTotal(8)
	n.Navigate("end")

	n.SetTotal(3)
	assert.Equal(t, 2, n.SelectedIndex())
	assert.Equal(t, 1, n.ViewportOffset())

	n.SetTotal(0)
	assert.Equal(t, 0, n.SelectedIndex())
	assert.Equal(t, 0, n.ViewportOffset())
}
