package plants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/dbx"
	"github.com/dmitrijs2005/growlog/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation is what PostgreSQL reports for an id that is
// not a UUID.
const invalidTextRepresentation = "22P02"

const plantColumns = `id, user_id, name, genetics, phase, germination_date, vegetation_date, flowering_date, photo_key, created_at, updated_at`

// PostgresRepository implements plant storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(row scanner) (*models.Plant, error) {
	p := &models.Plant{}
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Genetics, &p.Phase,
		&p.GerminationDate, &p.VegetationDate, &p.FloweringDate, &p.PhotoKey,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, plant *models.Plant) (*models.Plant, error) {
	query := `
		INSERT INTO plants (user_id, name, genetics, phase, germination_date, vegetation_date, flowering_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		plant.UserID, plant.Name, plant.Genetics, string(plant.Phase),
		plant.GerminationDate, plant.VegetationDate, plant.FloweringDate,
	).Scan(&plant.ID, &plant.CreatedAt, &plant.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return plant, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id, ownerID string) (*models.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = $1`

	p, err := scanPlant(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}
	if p.UserID != ownerID {
		return nil, common.ErrorForbidden
	}
	return p, nil
}

func (r *PostgresRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*models.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select plants: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plants: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return dbError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE user_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SetPhotoKey(ctx context.Context, id, ownerID, key string) error {
	query := `
		UPDATE plants SET photo_key = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, key, id, ownerID)
	if err != nil {
		return dbError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearPhotoKey(ctx context.Context, id, ownerID, key string) error {
	query := `
		UPDATE plants SET photo_key = NULL, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND photo_key = $3
	`
	if _, err := r.db.ExecContext(ctx, query, id, ownerID, key); err != nil {
		return dbError(err)
	}
	return nil
}

// dbError wraps err, turning a malformed plant id into common.ErrorNotFound.
func dbError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
