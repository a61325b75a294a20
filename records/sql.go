package records

import (
	"context"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"

	_ "github.com/lib/pq"
)

// DefaultQuery is the query used by SQLSource when none is given. Any query may be used instead, as
// long as it returns the same four columns.
const DefaultQuery = `
	SELECT
		date,
		temperature,
		direction,
		crowding_level
	FROM trips
	ORDER BY date`

type row struct {
	Date          time.Time `db:"date"`
	Temperature   float64   `db:"temperature"`
	Direction     string    `db:"direction"`
	CrowdingLevel float64   `db:"crowding_level"`
}

// SQLSource loads a corpus from a database, with either the "postgres" or "mysql" driver.
type SQLSource struct {
	db     *sqlx.DB
	query  string
	source string
}

// OpenSQL connects to the database and returns a source reading it with query, or DefaultQuery if
// query is empty.
func OpenSQL(ctx context.Context, driver, dsn, query string) (*SQLSource, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, &DataLoadError{Source: driver, Err: errors.Wrapf(err, "Failed to connect")}
	}

	return NewSQLSource(db, query), nil
}

// NewSQLSource returns a source reading db with query, or DefaultQuery if query is empty.
func NewSQLSource(db *sqlx.DB, query string) *SQLSource {
	if query == "" {
		query = DefaultQuery
	}
	return &SQLSource{db: db, query: query, source: db.DriverName()}
}

// Load runs the query and returns every row as a Sample, in the order given by the query.
func (s *SQLSource) Load(ctx context.Context) ([]crowdnet.Sample, error) {
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, s.query); err != nil {
		return nil, &DataLoadError{Source: s.source, Err: errors.Wrapf(err, "Query failed")}
	}

	samples, err := toSamples(rows)
	if err != nil {
		return nil, &DataLoadError{Source: s.source, Err: err}
	}
	return samples, nil
}

// Close closes the underlying database.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func toSamples(rows []row) ([]crowdnet.Sample, error) {
	samples := make([]crowdnet.Sample, len(rows))
	for i, r := range rows {
		dir, err := crowdnet.ParseDirection(r.Direction)
		if err != nil {
			return nil, errors.Wrapf(err, "Row %d", i)
		}

		y, m, d := r.Date.Date()
		samples[i] = crowdnet.Sample{
			Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Temperature:   r.Temperature,
			Direction:     dir,
			CrowdingLevel: r.CrowdingLevel,
		}
	}

	if err := Check(samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// MySQLDSN builds a DSN for the "mysql" driver that parses DATE columns into time.Time, as Load
// requires.
func MySQLDSN(user, password, addr, dbName string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = dbName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
