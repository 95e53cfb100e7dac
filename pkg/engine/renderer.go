package engine

// Renderer presents a finished frame somewhere
type Renderer interface {
	// Render shows the frame. It may block until the user is done.
	Render(frame *Frame) error

	// Close releases resources
	Close()
}
