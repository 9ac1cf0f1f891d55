package testutil

import (
	"strings"
	"testing"
)

// SampleLog is a Yandex relevance prediction log with eight query sessions.
// Split at 6: the training part holds q1, q2 and q3; of the two test
// candidates only session 8 (q3) survives, session 7 (q4) is unseen.
var SampleLog = strings.Join([]string{
	"1\t0\tQ\tq1\t213\td1\td2\td3",
	"1\t5\tC\td1",
	"2\t0\tQ\tq2\t213\td4\td5",
	"2\t3\tC\td5",
	"3\t0\tQ\tq1\t213\td1\td3\td2",
	"3\t2\tC\td3",
	"3\t9\tC\td2",
	"4\t0\tQ\tq3\t213\td6\td7",
	"5\t0\tQ\tq2\t213\td5\td4",
	"5\t1\tC\td5",
	"6\t0\tQ\tq1\t213\td2\td1\td3",
	"6\t1\tC\td1",
	"7\t0\tQ\tq4\t213\td8\td9",
	"8\t0\tQ\tq3\t213\td7\td6",
	"8\t4\tC\td7",
}, "\n") + "\n"

// SampleLogQueries is the number of distinct queries in SampleLog
const SampleLogQueries = 4

// SampleLogFirstSeenResults is the number of results of the first session
// of every query in SampleLog
const SampleLogFirstSeenResults = 9

// WriteSampleLog writes SampleLog into dir and returns its path
func WriteSampleLog(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "train.tsv", SampleLog)
}
