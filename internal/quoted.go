package internal

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// QuotedWriter writes CSV records with every field enclosed in double
// quotes. Embedded quotes are doubled.
type QuotedWriter struct {
	UseCRLF bool // True to use \r\n as the line terminator
	w       *bufio.Writer
}

// NewQuotedWriter creates a QuotedWriter on top of w
func NewQuotedWriter(w io.Writer) *QuotedWriter {
	return &QuotedWriter{w: bufio.NewWriter(w)}
}

// Write writes a single record followed by the line terminator
func (qw *QuotedWriter) Write(fields ...string) error {
	for i, f := range fields {
		if i > 0 {
			if err := qw.w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := qw.w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := qw.w.WriteString(strings.ReplaceAll(f, `"`, `""`)); err != nil {
			return err
		}
		if err := qw.w.WriteByte('"'); err != nil {
			return err
		}
	}
	if qw.UseCRLF {
		if err := qw.w.WriteByte('\r'); err != nil {
			return err
		}
	}
	return qw.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer
func (qw *QuotedWriter) Flush() error {
	return qw.w.Flush()
}

// FormatFloat renders a float with 12 significant digits, keeping a
// trailing ".0" on integral values. Exports use this format.
func FormatFloat(v float64) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	return withPointZero(strconv.FormatFloat(v, 'g', 12, 64))
}

// FormatFloatRepr renders the shortest representation that parses back to
// v. Exponent notation is used below 1e-4 and from 1e16 on. The ledger
// uses this format.
func FormatFloatRepr(v float64) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return withPointZero(strconv.FormatFloat(v, 'f', -1, 64))
}

func formatSpecial(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "nan", true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}

func withPointZero(s string) string {
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
