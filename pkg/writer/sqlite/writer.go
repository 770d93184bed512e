// Package sqlite provides SQLite database writing for cluster evaluation results
package sqlite

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/clusterqc/pkg/eval"
)

// Date format for EvaluationTable (ISO 8601)
const creationDateFormat = "2006-01-02T15:04:05Z07:00"

// Run describes one evaluation to persist.
type Run struct {
	ID        string // Generated if empty
	InputPath string
	Params    eval.Params
	Result    eval.Result
	CreatedAt time.Time // Defaults to now
}

// Writer handles writing evaluation runs to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	closed     bool
}

// NewWriter creates a new SQLite writer, creating the schema if needed.
// Existing runs in the database are kept.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS EvaluationTable (
		RunId TEXT PRIMARY KEY,
		CreationDate TEXT,
		InputPath TEXT,
		Charges TEXT,
		MinClusterSize INTEGER,
		MaxClusterSize INTEGER,
		IdentityMode TEXT,
		NumClustered INTEGER,
		NumNoise INTEGER,
		PropClustered DOUBLE,
		PropClusteredIncorrect DOUBLE,
		Homogeneity DOUBLE,
		Completeness DOUBLE
	);

	CREATE TABLE IF NOT EXISTS ClusterTable (
		RunId TEXT REFERENCES EvaluationTable(RunId),
		Cluster INTEGER,
		Size INTEGER,
		Identified INTEGER,
		Mismatches INTEGER,
		MajoritySequence TEXT,
		PRIMARY KEY (RunId, Cluster)
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// WriteRun writes an evaluation and its per-cluster statistics in a single
// transaction and returns the run id.
func (w *Writer) WriteRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := w.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res := run.Result
	_, err = tx.Exec(`
		INSERT INTO EvaluationTable (
			RunId, CreationDate, InputPath, Charges, MinClusterSize, MaxClusterSize,
			IdentityMode, NumClustered, NumNoise, PropClustered,
			PropClusteredIncorrect, Homogeneity, Completeness
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt.UTC().Format(creationDateFormat),
		run.InputPath,
		formatCharges(run.Params.Charges),
		nullableInt(run.Params.MinClusterSize),
		nullableInt(run.Params.MaxClusterSize),
		string(run.Params.Identity),
		res.NumClustered,
		res.NumNoise,
		nullableFloat(res.PropClustered),
		nullableFloat(res.PropClusteredIncorrect),
		nullableFloat(res.Homogeneity),
		nullableFloat(res.Completeness),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert evaluation: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ClusterTable (
			RunId, Cluster, Size, Identified, Mismatches, MajoritySequence
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare cluster statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range res.Clusters {
		var majority interface{} = nil
		if c.Majority != "" {
			majority = c.Majority
		}
		if _, err := stmt.Exec(run.ID, c.Label, c.Size, c.Identified, c.Mismatches, majority); err != nil {
			return "", fmt.Errorf("failed to insert cluster %d: %w", c.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return run.ID, nil
}

// formatCharges renders the charge filter as "2,3"; nil means no filter
func formatCharges(charges []int) interface{} {
	if charges == nil {
		return nil
	}
	parts := make([]string, len(charges))
	for i, c := range charges {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// nullableInt stores disabled (zero) bounds as NULL
func nullableInt(v int) interface{} {
	if v <= 0 {
		return nil
	}
	return v
}

// nullableFloat stores undefined statistics as NULL
func nullableFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// Close closes the database connection
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
