package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Runner applies ordered SQL migration units exactly once and records the
// applied names in the migrations table. It must finish before the HTTP
// server starts accepting traffic; any error it returns is fatal to the
// process because the schema state is unknown.
type Runner struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewRunner(db *sql.DB, log zerolog.Logger) *Runner {
	return &Runner{db: db, log: log}
}

// Unit is one migration file: NNNN_description.sql. Lexicographic filename
// order is the execution order, so the numeric prefix must be zero-padded.
type Unit struct {
	Seq  int
	Name string
	Path string
}

// ApplyAll discovers migration units in dir, applies the pending ones in
// order, and then ensures the bootstrap administrator exists. It returns
// the number of units applied in this run.
//
// Each unit is applied inside one transaction together with its
// bookkeeping record: a unit either fully applies and is recorded,
// or leaves no trace and is retried on the next run.
func (r *Runner) ApplyAll(ctx context.Context, dir string) (int, error) {
	units, err := Discover(dir)
	if err != nil {
		return 0, err
	}

	if err := r.ensureMigrationsTable(ctx); err != nil {
		return 0, err
	}

	applied, err := r.appliedSet(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, u := range units {
		if _, ok := applied[u.Name]; ok {
			continue
		}
		if err := r.apply(ctx, u); err != nil {
			return count, fmt.Errorf("migrate: apply %s: %w", u.Name, err)
		}
		r.log.Info().Str("migration", u.Name).Msg("migration applied")
		count++
	}

	if err := r.ensureAdmin(ctx); err != nil {
		return count, err
	}

	return count, nil
}

// Discover lists dir for .sql files and validates the naming convention:
// a numeric prefix, an underscore, a description. Two files claiming the
// same sequence number is an error rather than an arbitrary order.
func Discover(dir string) ([]Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("migrate: read dir: %w", err)
	}

	var units []Unit
	seen := map[int]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		seq, err := parseSeq(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[seq]; ok {
			return nil, fmt.Errorf("migrate: duplicate sequence %d: %s and %s", seq, prev, e.Name())
		}
		seen[seq] = e.Name()
		units = append(units, Unit{Seq: seq, Name: e.Name(), Path: filepath.Join(dir, e.Name())})
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

func parseSeq(name string) (int, error) {
	base := strings.TrimSuffix(name, ".sql")
	idx := strings.Index(base, "_")
	if idx <= 0 {
		return 0, fmt.Errorf("migrate: %s: want NNNN_description.sql", name)
	}
	seq, err := strconv.Atoi(base[:idx])
	if err != nil {
		return 0, fmt.Errorf("migrate: %s: non-numeric prefix: %w", name, err)
	}
	return seq, nil
}

// SplitStatements splits a migration file into individual statements on
// the ';' terminator, dropping blanks.
func SplitStatements(script string) []string {
	var stmts []string
	for _, s := range strings.Split(script, ";") {
		s = strings.TrimSpace(s)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (r *Runner) ensureMigrationsTable(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS migrations (
  name TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("migrate: ensure migrations table: %w", err)
	}
	return nil
}

func (r *Runner) appliedSet(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM migrations;`)
	if err != nil {
		return nil, fmt.Errorf("migrate: read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = struct{}{}
	}
	return applied, rows.Err()
}

func (r *Runner) apply(ctx context.Context, u Unit) error {
	script, err := os.ReadFile(u.Path)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range SplitStatements(string(script)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO migrations (name) VALUES ($1);`, u.Name); err != nil {
		return err
	}
	return tx.Commit()
}
