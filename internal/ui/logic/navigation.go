package logic

// Navigator handles selection and viewport management over a flat result list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 10}
}

// SelectedIndex returns the current selected index
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible item
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns how many items fit on screen
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// SetViewportHeight updates the number of visible items
func (n *Navigator) SetViewportHeight(h int) {
	if h < 1 {
		h = 1
	}
	n.viewportHeight = h
	n.ensureSelectedVisible()
}

// SetTotal updates the item count, clamping the selection into range
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.totalItems = total
	n.selectedIndex = n.clamp(n.selectedIndex)
	n.ensureSelectedVisible()
}

// Reset moves the selection back to the first item
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// Move shifts the selection by delta items
func (n *Navigator) Move(delta int) {
	n.selectedIndex = n.clamp(n.selectedIndex + delta)
	n.ensureSelectedVisible()
}

// Navigate applies a named direction as produced by the input layer
func (n *Navigator) Navigate(direction string) {
	page := n.viewportHeight - 1
	if page < 1 {
		page = 1
	}
	switch direction {
	case "up":
		n.Move(-1)
	case "down":
		n.Move(1)
	case "pageup":
		n.Move(-page)
	case "pagedown":
		n.Move(page)
	case "home":
		n.selectedIndex = 0
		n.ensureSelectedVisible()
	case "end":
		n.selectedIndex = n.clamp(n.totalItems - 1)
		n.ensureSelectedVisible()
	}
}

func (n *Navigator) clamp(i int) int {
	if n.totalItems == 0 || i < 0 {
		return 0
	}
	if i >= n.totalItems {
		return n.totalItems - 1
	}
	return i
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}
	maxOffset := n.totalItems - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
