package livechart

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeLine Mode = iota
	ModeBar
	ModeArea
	ModeScatter
)

var modeNames = [...]string{
	ModeLine:    "line",
	ModeBar:     "bar",
	ModeArea:    "area",
	ModeScatter: "scatter",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles line -> bar -> area -> scatter -> line.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeLine, fmt.Errorf("unknown chart mode %q (want line, bar, area or scatter)", s)
}

// RenderConfig is owned by the controls and read by the render pass.
type RenderConfig struct {
	Mode     Mode
	ShowGrid bool
	Spacing  float64
}
