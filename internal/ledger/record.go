// Package ledger persists one performance record per experiment run.
package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/clickexp/clickexp/internal"
)

// Header lists the ledger columns in their persisted order
var Header = []string{
	"TimeStamp",
	"ClickLogFile",
	"ClickModel",
	"SearchSessions_Train",
	"UniqueQueries_Train",
	"SearchSessions_Test",
	"UniqueQueries_Test",
	"LogLikelihood_Train",
	"LogLikelihood_Test",
	"Perplexity_Train",
	"Perplexity_Test",
}

// Record is one row of the performance ledger
type Record struct {
	RunID              string
	Timestamp          time.Time
	LogFile            string
	ModelName          string
	TrainSessionCount  int
	TrainQueryCount    int
	TestSessionCount   int
	TestQueryCount     int
	LogLikelihoodTrain float64
	LogLikelihoodTest  float64
	PerplexityTrain    float64
	PerplexityTest     float64
}

// Sink receives ledger records
type Sink interface {
	Append(rec *Record) error
}

// Reader lists previously appended records
type Reader interface {
	Records() ([]*Record, error)
}

// UnixSeconds renders t as seconds since the epoch with a fractional part
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

// Fields renders the record in Header order
func (r *Record) Fields() []string {
	return []string{
		internal.FormatFloatRepr(UnixSeconds(r.Timestamp)),
		r.LogFile,
		r.ModelName,
		strconv.Itoa(r.TrainSessionCount),
		strconv.Itoa(r.TrainQueryCount),
		strconv.Itoa(r.TestSessionCount),
		strconv.Itoa(r.TestQueryCount),
		internal.FormatFloatRepr(r.LogLikelihoodTrain),
		internal.FormatFloatRepr(r.LogLikelihoodTest),
		internal.FormatFloatRepr(r.PerplexityTrain),
		internal.FormatFloatRepr(r.PerplexityTest),
	}
}

// ParseRecord builds a record from fields in Header order
func ParseRecord(fields []string) (*Record, error) {
	if len(fields) != len(Header) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(Header), len(fields))
	}

	var (
		rec  = &Record{LogFile: fields[1], ModelName: fields[2]}
		ints = []*int{&rec.TrainSessionCount, &rec.TrainQueryCount, &rec.TestSessionCount, &rec.TestQueryCount}
		flts = []*float64{&rec.LogLikelihoodTrain, &rec.LogLikelihoodTest, &rec.PerplexityTrain, &rec.PerplexityTest}
	)

	ts, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", fields[0], err)
	}
	rec.Timestamp = fromUnixSeconds(ts)

	for i, dst := range ints {
		v, err := strconv.Atoi(fields[3+i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", Header[3+i], fields[3+i], err)
		}
		*dst = v
	}
	for i, dst := range flts {
		v, err := parseFloat(fields[7+i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", Header[7+i], fields[7+i], err)
		}
		*dst = v
	}

	return rec, nil
}

func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "nan":
		return math.NaN(), nil
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(s, 64)
}
