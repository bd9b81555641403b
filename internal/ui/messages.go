package ui

import (
	"desearch/internal/domain"
	"desearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// stateMsg carries the snapshot returned by a finished Search or Refresh call
type stateMsg struct {
	State domain.State
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	help bool
	err  error
}

// openedMsg contains the result of launching the URL opener
type openedMsg struct {
	url string
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
