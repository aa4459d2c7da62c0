package pretty

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used for a terminal whose size cannot be read.
const DefaultWidth = 120

// TerminalWidth returns the column count of w when it is a terminal and 0
// otherwise. Callers treat 0 as unlimited.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
