package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS calculations (
	id         UUID PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	case_name  TEXT NOT NULL,
	input      JSONB NOT NULL,
	sigma      DOUBLE PRECISION,
	delta      DOUBLE PRECISION,
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS calculations_user_created ON calculations (user_id, created_at DESC);
`

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// NormalizeDSN defaults a connection string to sslmode=require.
func NormalizeDSN(connStr string) string {
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr = connStr + sep + "sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	return connStr
}

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", NormalizeDSN(connStr))
	if err != nil {
		return nil, fmt.Errorf("configure database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not responding: %w", err)
	}
	return db, nil
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return 0, ErrUserExists
	}
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveCalculation(ctx context.Context, c Calculation) error {
	query := `INSERT INTO calculations (id, user_id, case_name, input, sigma, delta, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Case, []byte(c.Input), c.Sigma, c.Delta, c.Error, c.CreatedAt)
	return err
}

const calculationColumns = "id, case_name, input, sigma, delta, error, created_at"

func scanCalculation(row interface{ Scan(...any) error }, userID int) (Calculation, error) {
	c := Calculation{UserID: userID}
	var input []byte
	var sigma, delta sql.NullFloat64
	if err := row.Scan(&c.ID, &c.Case, &input, &sigma, &delta, &c.Error, &c.CreatedAt); err != nil {
		return Calculation{}, err
	}
	c.Input = input
	if sigma.Valid {
		c.Sigma = &sigma.Float64
	}
	if delta.Valid {
		c.Delta = &delta.Float64
	}
	return c, nil
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	query := "SELECT " + calculationColumns + " FROM calculations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2"
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetCalculation(ctx context.Context, userID int, id string) (Calculation, error) {
	query := "SELECT " + calculationColumns + " FROM calculations WHERE user_id=$1 AND id=$2"
	c, err := scanCalculation(r.db.QueryRowContext(ctx, query, userID, id), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, ErrNotFound
	}
	return c, err
}
