package export

import (
	"io"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
)

// SatisfactionExporter writes the predicted satisfaction of every result of
// the first session of each query
type SatisfactionExporter struct{}

// Export writes "query","result_id","satisfaction" rows without a header
func (e *SatisfactionExporter) Export(m clickmodel.ClickModel, sessions []*internal.SearchSession, w io.Writer) error {
	qw := internal.NewQuotedWriter(w)

	err := eachFirstSeen(sessions, func(s *internal.SearchSession) error {
		for _, r := range s.WebResults {
			sat := m.PredictRelevance(s.Query, r.ID)
			if err := qw.Write(s.Query, r.ID, internal.FormatFloat(sat)); err != nil {
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

func (e *SatisfactionExporter) Kind() string {
	return "satisfaction"
}

func (e *SatisfactionExporter) FileSuffix() string {
	return "SatisfactionProbability"
}
