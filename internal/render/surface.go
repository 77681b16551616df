package render

// TextMeasurer reports the on-screen extent of a string in canvas units.
type TextMeasurer interface {
	Measure(text string) Point
}

// Surface is the host window or terminal the dashboard draws into. All
// methods except RequestClose are called from the frame loop only.
type Surface interface {
	// PollEvents drains pending input and window events without blocking.
	PollEvents()
	// CloseRequested reports whether the user or the process asked to close.
	CloseRequested() bool
	// RequestClose may be called from any goroutine.
	RequestClose()
	// Size is the current canvas size in canvas units.
	Size() (width, height float64)
	Measurer() TextMeasurer
	Submit(list *DrawList) error
	Present() error
	Close() error
}
