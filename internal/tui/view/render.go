// Package view holds the render helpers of the week view: frame placement,
// the day grid, its header labels and the footer.
package view

// ViewState is the already rendered frame plus the terminal size.
type ViewState struct {
	Width            int
	Height           int
	Content          string
	EmptyPlaceholder string
}

// Render returns the frame once the terminal size is known, and a
// placeholder before the first resize message.
func Render(state ViewState) string {
	if state.Width > 0 && state.Height > 0 {
		return state.Content
	}
	if state.EmptyPlaceholder == "" {
		return "Loading..."
	}
	return state.EmptyPlaceholder
}
