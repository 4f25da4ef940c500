package report

import (
	"fmt"
	"io"
)

// Progress renders a completed-vs-total counter by rewriting a single
// line. It is a side channel for interactive use only and carries no
// correctness weight; a nil Progress silently does nothing. Only the
// draining consumer steps it, so no locking is needed.
type Progress struct {
	w     io.Writer
	total int
	done  int
}

func NewProgress(w io.Writer, total int) *Progress {
	if w == nil || total <= 0 {
		return nil
	}
	return &Progress{w: w, total: total}
}

func (p *Progress) Step() {
	if p == nil {
		return
	}
	p.done++
	fmt.Fprintf(p.w, "\rclang-tidy [%d/%d]", p.done, p.total)
}

// Finish terminates the rewritten line so later output starts clean.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	fmt.Fprintln(p.w)
}
