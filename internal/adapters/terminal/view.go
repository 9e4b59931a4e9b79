package terminal

import (
	"fmt"
	"io"
)

// base tracks the progress toggles of one view. A view is settled once every
// SetProgressBar(true) has been matched by a SetProgressBar(false).
type base struct {
	out     io.Writer
	width   int
	active  int
	settled bool
	err     error
}

func newBase(out io.Writer, width int) base {
	if width <= 0 {
		width = DefaultWidth
	}
	return base{out: out, width: width}
}

func (b *base) SetProgressBar(active bool) {
	if active {
		b.active++
		b.settled = false
		return
	}
	if b.active > 0 {
		b.active--
	}
	if b.active == 0 {
		b.settled = true
	}
}

func (b *base) ShowError(err error) {
	b.err = err
	fmt.Fprintln(b.out, errorStyle.Render("Error: "+err.Error()))
}

// Settled reports whether every started load has finished
func (b *base) Settled() bool {
	return b.settled
}

// Err returns the last error shown, if any
func (b *base) Err() error {
	return b.err
}

// Reset forgets the outcome of earlier loads
func (b *base) Reset() {
	b.settled = false
	b.err = nil
}

func (b *base) title(text string) {
	fmt.Fprintln(b.out, titleStyle.Render(text))
}

func (b *base) note(text string) {
	fmt.Fprintln(b.out, mutedStyle.Render(text))
}
