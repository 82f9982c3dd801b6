// Package progress renders training progress in a terminal.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// BarWidth is the number of columns of the progress bar.
const BarWidth = 50

// Display redraws a title, the current epoch, the last loss and a progress bar
// every time Update is called.
type Display struct {
	w           io.Writer
	title       string
	totalEpochs int
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer, title string, totalEpochs int) *Display {
	return &Display{w: w, title: title, totalEpochs: totalEpochs}
}

// Update redraws the screen. It matches event.Listener.
func (d *Display) Update(loss float64, epoch int) {
	filled := 0
	if d.totalEpochs > 0 {
		filled = int(float64(epoch) / float64(d.totalEpochs) * BarWidth)
	}
	filled = max(0, min(filled, BarWidth))

	var b strings.Builder
	b.WriteString("\033[2J\033[H")
	fmt.Fprintf(&b, "%s\n\n", d.title)
	fmt.Fprintf(&b, "Epoch: %d / %d\n", epoch, d.totalEpochs)
	fmt.Fprintf(&b, "Current Loss: %.6f\n", loss)
	fmt.Fprintf(&b, "Progress: [%s%s]\n", strings.Repeat("=", filled), strings.Repeat(" ", BarWidth-filled))

	io.WriteString(d.w, b.String())
}
