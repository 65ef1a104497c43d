package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/mipssim/insts"
)

const (
	regsPerRow = 4
	separator  = "--------------------------------------------------"
)

// TextWriter renders events as human-readable lines, one datum per line.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a TextWriter on top of w. Call Flush when done.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteListing writes the header values followed by the data and
// instruction segments.
func (t *TextWriter) WriteListing(l *Listing) error {
	fmt.Fprintf(t.w, "initialPC: %d\n", l.InitialPC)
	fmt.Fprintf(t.w, "dataStartAddress: %d\n", l.DataBase)
	fmt.Fprintf(t.w, "initialStackPointer: %d\n", l.InitialSP)
	fmt.Fprintf(t.w, "Number of data items: %d\n", l.NumData)

	for _, d := range l.Data {
		fmt.Fprintf(t.w, "%-12s%-35s%d\n",
			fmt.Sprintf("%d:", d.Addr), bits(uint32(d.Value)), uint32(d.Value))
	}

	for _, line := range l.Text {
		fmt.Fprintf(t.w, "%-12s%-35s%s\n",
			fmt.Sprintf("%d:", line.Addr), bits(line.Word), line.Disasm)
	}

	return t.err()
}

// WriteCycle writes one cycle block terminated by a separator line.
func (t *TextWriter) WriteCycle(c *Cycle) error {
	fmt.Fprintf(t.w, "Cycle %d:\n", c.Number)
	fmt.Fprintf(t.w, "Fetched: %d:\t%s\t%s\n", c.PC, bits(c.Word), c.Disasm)

	fmt.Fprintln(t.w, "Registers:")
	for i := 0; i < len(c.Registers); i += regsPerRow {
		cols := make([]string, 0, regsPerRow)
		for j := i; j < i+regsPerRow; j++ {
			cols = append(cols, fmt.Sprintf("%-16s%16d",
				insts.RegName(uint8(j))+":", c.Registers[j]))
		}
		fmt.Fprintln(t.w, strings.Join(cols, "\t"))
	}

	fmt.Fprintln(t.w, "Data Section:")
	for _, d := range c.Data {
		fmt.Fprintf(t.w, "%d : %d\n", d.Addr, d.Value)
	}

	fmt.Fprintln(t.w, "Stack Section:")
	for _, s := range c.Stack {
		fmt.Fprintf(t.w, "%d:%d\n", s.Addr, s.Value)
	}

	fmt.Fprintln(t.w, separator)

	return t.err()
}

// Flush writes any buffered output.
func (t *TextWriter) Flush() error {
	return t.w.Flush()
}

// err reports a sticky write error from the buffer. bufio.Writer keeps the
// first failure and returns it from every later Write.
func (t *TextWriter) err() error {
	_, err := t.w.Write(nil)
	return err
}

func bits(w uint32) string {
	return fmt.Sprintf("%032b", w)
}
