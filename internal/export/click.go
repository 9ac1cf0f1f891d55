package export

import (
	"fmt"
	"io"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
)

// ClickExporter writes the full click probability of every result of the
// first session of each query
type ClickExporter struct{}

// Export writes "query","result_id","probability" rows without a header
func (e *ClickExporter) Export(m clickmodel.ClickModel, sessions []*internal.SearchSession, w io.Writer) error {
	qw := internal.NewQuotedWriter(w)

	err := eachFirstSeen(sessions, func(s *internal.SearchSession) error {
		probs := m.FullClickProbs(s)
		if len(probs) != len(s.WebResults) {
			return fmt.Errorf("model %s returned %d probabilities for %d results of query %q",
				m.Name(), len(probs), len(s.WebResults), s.Query)
		}
		for i, r := range s.WebResults {
			if err := qw.Write(s.Query, r.ID, internal.FormatFloat(probs[i])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return qw.Flush()
}

func (e *ClickExporter) Kind() string {
	return "click"
}

func (e *ClickExporter) FileSuffix() string {
	return "ClickProbability"
}
