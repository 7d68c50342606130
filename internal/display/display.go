package display

// Display renders decoded frames in a window.
type Display interface {
	Run() error
}
