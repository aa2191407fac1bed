package application

// DoneMsg reports a finished action on the status line.
type DoneMsg string

// ErrMsg reports a failed action. The menu keeps running.
type ErrMsg struct{ Err error }

// ListMsg replaces the output pane with lines under a title.
type ListMsg struct {
	Title string
	Lines []string
}
