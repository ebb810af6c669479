package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtanh/abacus/internal/platform/apperr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Calculation, int, error) {
	const countQuery = `SELECT count(*) FROM core.calculation WHERE userid = $1`
	const query = `
		SELECT id, userid, operation, operanda, operandb, result, createdat, updatedat
		FROM core.calculation
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_calculation_repo_count_failed: %w", err)
	}

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_calculation_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var calculations []*Calculation
	for rows.Next() {
		c := &Calculation{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Operation, &c.OperandA, &c.OperandB, &c.Result, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_calculation_repo_scan_failed: %w", err)
		}
		calculations = append(calculations, c)
	}

	return calculations, total, nil
}

func (repository *PostgresRepository) GetForUser(context context.Context, id, userID string) (*Calculation, error) {
	const query = `
		SELECT id, userid, operation, operanda, operandb, result, createdat, updatedat
		FROM core.calculation
		WHERE id = $1 AND userid = $2`

	c := &Calculation{}
	err := repository.db.QueryRow(context, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Operation, &c.OperandA, &c.OperandB, &c.Result, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Calculation")
		}
		return nil, fmt.Errorf("postgres_calculation_repo_get_failed: %w", err)
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, calculation *Calculation) error {
	const query = `
		INSERT INTO core.calculation (
			id, userid, operation, operanda, operandb, result, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if calculation.CreatedAt.IsZero() {
		calculation.CreatedAt = now
	}
	calculation.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		calculation.ID,
		calculation.UserID,
		calculation.Operation,
		calculation.OperandA,
		calculation.OperandB,
		calculation.Result,
		calculation.CreatedAt,
		calculation.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_calculation_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, calculation *Calculation) error {
	const query = `
		UPDATE core.calculation
		SET operation = $3, operanda = $4, operandb = $5, result = $6, updatedat = $7
		WHERE id = $1 AND userid = $2`

	calculation.UpdatedAt = time.Now()
	cmd, err := repository.db.Exec(context, query,
		calculation.ID,
		calculation.UserID,
		calculation.Operation,
		calculation.OperandA,
		calculation.OperandB,
		calculation.Result,
		calculation.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_calculation_repo_update_failed: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Calculation")
	}

	return nil
}

func (repository *PostgresRepository) DeleteForUser(context context.Context, id, userID string) error {
	const query = `DELETE FROM core.calculation WHERE id = $1 AND userid = $2`

	cmd, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres_calculation_repo_delete_failed: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Calculation")
	}

	return nil
}
