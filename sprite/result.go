package sprite

import (
	"spritegen/palette"
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is a finished sprite. It is not modified after Convert returns.
type Result struct {
	Views      Views           `json:"matrix"`
	Archetype  Archetype       `json:"type"`
	Dimensions Dimensions      `json:"dimensions"`
	Palette    palette.Palette `json:"palette"`
}

// Status is the state of one conversion job.
type Status int

const (
	Idle Status = iota
	Processing
	Complete
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Complete:
		return "complete"
	case Error:
		return "error"
	}
	return "unknown"
}

// Done reports whether s is a final state.
func (s Status) Done() bool {
	return s == Complete || s == Error
}
