package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS squares_calculations (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		numbers    double precision[] NOT NULL,
		weights    double precision[],
		result     double precision NOT NULL,
		source     text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS squares_calculations_created_at_idx
		ON squares_calculations (created_at DESC)`,
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const calculationColumns = `id, numbers, weights, result, source, created_at`

func (s *PostgresStore) CreateCalculation(ctx context.Context, c *Calculation) error {
	numbers := c.Numbers
	if numbers == nil {
		numbers = []float64{}
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO squares_calculations (numbers, weights, result, source)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		numbers, c.Weights, c.Result, string(c.Source),
	).Scan(&c.ID, &c.CreatedAt)
}

func (s *PostgresStore) GetCalculation(ctx context.Context, id uuid.UUID) (*Calculation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+calculationColumns+`
		FROM squares_calculations WHERE id = $1`, id)

	c, err := scanCalculation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) ListCalculations(ctx context.Context, filter CalculationFilter) ([]*Calculation, error) {
	query := `SELECT ` + calculationColumns + ` FROM squares_calculations WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Source != "" {
		n++
		query += fmt.Sprintf(" AND source = $%d", n)
		args = append(args, string(filter.Source))
	}

	query += " ORDER BY created_at DESC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*CalculationStats, error) {
	stats := &CalculationStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(result), 0), MAX(created_at)
		FROM squares_calculations`,
	).Scan(&stats.TotalCalculations, &stats.AvgResult, &stats.LastCalculatedAt)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanCalculation(row pgx.Row) (*Calculation, error) {
	c := &Calculation{}
	var source string
	if err := row.Scan(&c.ID, &c.Numbers, &c.Weights, &c.Result, &source, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Source = Source(source)
	return c, nil
}
