package cli

import (
	"fmt"
	"io"
)

// out writes a formatted string to w, for short inline CLI output.
func out(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// outln writes args to w followed by a newline.
func outln(w io.Writer, args ...interface{}) {
	fmt.Fprintln(w, args...)
}
