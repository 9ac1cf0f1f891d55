package ledger

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/clickexp/clickexp/internal"
	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS performance_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	timestamp_ns INTEGER NOT NULL,
	log_file TEXT NOT NULL,
	model TEXT NOT NULL,
	train_sessions INTEGER NOT NULL,
	train_queries INTEGER NOT NULL,
	test_sessions INTEGER NOT NULL,
	test_queries INTEGER NOT NULL,
	ll_train REAL,
	ll_test REAL,
	perplexity_train REAL,
	perplexity_test REAL
)`

// SQLiteLedger mirrors the ledger in a SQLite database so results of many
// runs can be queried
type SQLiteLedger struct {
	path string
	db   *sql.DB
}

// OpenSQLiteLedger opens (creating if needed) the ledger database at path
func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &internal.LedgerError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &internal.LedgerError{Path: path, Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, &internal.LedgerError{Path: path, Op: "open", Err: fmt.Errorf("failed to create table: %w", err)}
	}

	return &SQLiteLedger{path: path, db: db}, nil
}

// Close closes the database
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// NaN is stored as NULL
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// Append implements Sink
func (l *SQLiteLedger) Append(rec *Record) error {
	const insertSQL = `INSERT INTO performance_results
		(run_id, timestamp_ns, log_file, model, train_sessions, train_queries, test_sessions, test_queries,
		 ll_train, ll_test, perplexity_train, perplexity_test)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := l.db.Exec(insertSQL,
		rec.RunID, rec.Timestamp.UnixNano(), rec.LogFile, rec.ModelName,
		rec.TrainSessionCount, rec.TrainQueryCount, rec.TestSessionCount, rec.TestQueryCount,
		nullable(rec.LogLikelihoodTrain), nullable(rec.LogLikelihoodTest),
		nullable(rec.PerplexityTrain), nullable(rec.PerplexityTest),
	)
	if err != nil {
		return &internal.LedgerError{Path: l.path, Op: "append", Err: err}
	}
	return nil
}

// Records implements Reader, oldest first
func (l *SQLiteLedger) Records() ([]*Record, error) {
	const query = `SELECT run_id, timestamp_ns, log_file, model, train_sessions, train_queries,
		test_sessions, test_queries, ll_train, ll_test, perplexity_train, perplexity_test
		FROM performance_results ORDER BY id`

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, &internal.LedgerError{Path: l.path, Op: "read", Err: fmt.Errorf("query failed: %w", err)}
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec                            Record
			ts                             int64
			llTrain, llTest, pTrain, pTest sql.NullFloat64
		)
		if err := rows.Scan(&rec.RunID, &ts, &rec.LogFile, &rec.ModelName,
			&rec.TrainSessionCount, &rec.TrainQueryCount, &rec.TestSessionCount, &rec.TestQueryCount,
			&llTrain, &llTest, &pTrain, &pTest); err != nil {
			return nil, &internal.LedgerError{Path: l.path, Op: "read", Err: fmt.Errorf("scan failed: %w", err)}
		}
		rec.Timestamp = time.Unix(0, ts)
		rec.LogLikelihoodTrain = fromNullable(llTrain)
		rec.LogLikelihoodTest = fromNullable(llTest)
		rec.PerplexityTrain = fromNullable(pTrain)
		rec.PerplexityTest = fromNullable(pTest)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, &internal.LedgerError{Path: l.path, Op: "read", Err: fmt.Errorf("rows iteration error: %w", err)}
	}

	return records, nil
}
