// Package sqlite is a modernc.org/sqlite-backed jobstore.Store, grounded on
// server/dao/sqlite: CREATE TABLE IF NOT EXISTS at connection time, prepared
// statements for writes, and a wrapDBError helper translating driver errors
// into the package's sentinel errors.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/primrec/internal/jobstore"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

type store struct {
	db *sql.DB
}

// New opens (creating if necessary) a jobs database under dataDir.
func New(dataDir string) (jobstore.Store, error) {
	file := filepath.Join(dataDir, "jobs.db")

	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	s := &store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS jobs (
		id TEXT NOT NULL PRIMARY KEY,
		size INTEGER NOT NULL,
		scan_range INTEGER NOT NULL,
		step_budget INTEGER NOT NULL,
		status TEXT NOT NULL,
		best INTEGER NOT NULL,
		winners BLOB NOT NULL,
		overflow_count INTEGER NOT NULL,
		failure_reason TEXT NOT NULL,
		created INTEGER NOT NULL,
		completed INTEGER NOT NULL
	);`
	_, err := s.db.Exec(stmt)
	return wrapDBError(err)
}

func (s *store) Create(ctx context.Context, job jobstore.Job) (jobstore.Job, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return jobstore.Job{}, fmt.Errorf("could not generate ID: %w", err)
	}
	job.ID = id
	if job.Created.IsZero() {
		job.Created = time.Now()
	}

	winners := winnersBlob(job.Winners)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, size, scan_range, step_budget, status, best, winners, overflow_count, failure_reason, created, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID.String(), job.Size, job.ScanRange, job.StepBudget, string(job.Status), job.Best,
		rezi.EncBinary(winners), job.OverflowCount, job.FailureReason,
		job.Created.Unix(), convertToDBTime(job.Completed),
	)
	if err != nil {
		return jobstore.Job{}, wrapDBError(err)
	}

	return job, nil
}

func (s *store) GetByID(ctx context.Context, id uuid.UUID) (jobstore.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT size, scan_range, step_budget, status, best, winners, overflow_count, failure_reason, created, completed
		 FROM jobs WHERE id = ?;`, id.String())

	job, err := scanJob(row.Scan)
	if err != nil {
		return jobstore.Job{}, err
	}
	job.ID = id
	return job, nil
}

func (s *store) GetAll(ctx context.Context) ([]jobstore.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, size, scan_range, step_budget, status, best, winners, overflow_count, failure_reason, created, completed
		 FROM jobs ORDER BY created ASC;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []jobstore.Job
	for rows.Next() {
		var idStr string
		job, err := scanJobWithID(rows.Scan, &idStr)
		if err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("stored ID %q is invalid: %w", idStr, err)
		}
		job.ID = id
		all = append(all, job)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	return all, nil
}

func (s *store) Update(ctx context.Context, id uuid.UUID, job jobstore.Job) (jobstore.Job, error) {
	winners := winnersBlob(job.Winners)
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET size=?, scan_range=?, step_budget=?, status=?, best=?, winners=?, overflow_count=?, failure_reason=?, completed=?
		 WHERE id=?;`,
		job.Size, job.ScanRange, job.StepBudget, string(job.Status), job.Best,
		rezi.EncBinary(winners), job.OverflowCount, job.FailureReason,
		convertToDBTime(job.Completed), id.String(),
	)
	if err != nil {
		return jobstore.Job{}, wrapDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return jobstore.Job{}, wrapDBError(err)
	}
	if affected < 1 {
		return jobstore.Job{}, jobstore.ErrNotFound
	}

	job.ID = id
	return job, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

func scanJob(scan func(dest ...any) error) (jobstore.Job, error) {
	var job jobstore.Job
	var status string
	var winnersData []byte
	var created, completed int64

	err := scan(&job.Size, &job.ScanRange, &job.StepBudget, &status, &job.Best, &winnersData,
		&job.OverflowCount, &job.FailureReason, &created, &completed)
	if err != nil {
		return jobstore.Job{}, wrapDBError(err)
	}

	if err := fillJob(&job, status, winnersData, created, completed); err != nil {
		return jobstore.Job{}, err
	}
	return job, nil
}

func scanJobWithID(scan func(dest ...any) error, idStr *string) (jobstore.Job, error) {
	var job jobstore.Job
	var status string
	var winnersData []byte
	var created, completed int64

	err := scan(idStr, &job.Size, &job.ScanRange, &job.StepBudget, &status, &job.Best, &winnersData,
		&job.OverflowCount, &job.FailureReason, &created, &completed)
	if err != nil {
		return jobstore.Job{}, wrapDBError(err)
	}

	if err := fillJob(&job, status, winnersData, created, completed); err != nil {
		return jobstore.Job{}, err
	}
	return job, nil
}

func fillJob(job *jobstore.Job, status string, winnersData []byte, created, completed int64) error {
	job.Status = jobstore.Status(status)
	job.Created = time.Unix(created, 0)
	job.Completed = convertFromDBTime(completed)

	var winners winnersBlob
	if _, err := rezi.DecBinary(winnersData, &winners); err != nil {
		return fmt.Errorf("decode winners: %w", err)
	}
	job.Winners = []string(winners)
	return nil
}

func convertToDBTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDBTime(i int64) time.Time {
	if i == 0 {
		return time.Time{}
	}
	return time.Unix(i, 0)
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	if errors.Is(err, sql.ErrNoRows) {
		return jobstore.ErrNotFound
	}
	return err
}
