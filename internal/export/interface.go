// Package export writes per-query, per-result probability estimates of a
// trained click model.
package export

import (
	"fmt"
	"io"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
)

// Exporter defines the interface of a probability export pass
type Exporter interface {
	Export(m clickmodel.ClickModel, sessions []*internal.SearchSession, w io.Writer) error
	Kind() string
	FileSuffix() string
}

// Kinds lists the export passes in the order the harness runs them
var Kinds = []string{"click", "satisfaction"}

// NewExporter creates a new exporter based on kind
func NewExporter(kind string) (Exporter, error) {
	switch kind {
	case "click":
		return &ClickExporter{}, nil
	case "satisfaction":
		return &SatisfactionExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export kind: %s (supported: click, satisfaction)", kind)
	}
}

// FileName returns the output file name of an export pass for a model
func FileName(modelName string, e Exporter) string {
	return fmt.Sprintf("%s_%s_Raw.csv", modelName, e.FileSuffix())
}

// eachFirstSeen calls fn for the first session of every distinct query, in
// log order. Later sessions of an already seen query are skipped entirely.
func eachFirstSeen(sessions []*internal.SearchSession, fn func(s *internal.SearchSession) error) error {
	seen := internal.NewQuerySet()
	for _, s := range sessions {
		if !seen.Add(s.Query) {
			continue
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}
