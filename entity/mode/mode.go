package mode

import "fmt"

// Mode selects which path datasets are generated.
type Mode uint8

const (
	All Mode = iota
	Zoom
	Loop
)

func UnmarshalText(text string) (Mode, error) {
	switch text {
	case "all", "":
		return All, nil
	case "zoom":
		return Zoom, nil
	case "loop":
		return Loop, nil
	default:
		return 0, fmt.Errorf("invalid mode: %q", text)
	}
}

func (m Mode) String() string {
	switch m {
	case All:
		return "all"
	case Zoom:
		return "zoom"
	case Loop:
		return "loop"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func (m Mode) WantZoom() bool {
	return m == All || m == Zoom
}

func (m Mode) WantLoop() bool {
	return m == All || m == Loop
}
