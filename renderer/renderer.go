package renderer

type Renderer interface {
	// Render frames until done: a single accumulation run for the still
	// renderer, the window loop for the interactive one.
	Render() error

	// Shutdown renderer and release any attached resources.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
