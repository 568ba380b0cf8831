package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sop-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

const matrixTable = "product_customer_matrix"

type MatrixRepository interface {
	Upsert(ctx context.Context, entry *domain.MatrixEntry) error
	GetEntry(ctx context.Context, customerID, productID string) (*domain.MatrixEntry, error)
	ListByCustomer(ctx context.Context, customerID string, onlyActive bool) ([]*domain.MatrixEntry, error)
	CountActive(ctx context.Context) (int, error)
}

type matrixRepository struct {
	conn *postgres.Connection
}

func NewMatrixRepository(conn *postgres.Connection) MatrixRepository {
	return &matrixRepository{
		conn: conn,
	}
}

func (r *matrixRepository) Upsert(ctx context.Context, entry *domain.MatrixEntry) error {
	query, args, err := squirrel.
		Insert(matrixTable).
		Columns("id", "customer_id", "product_id", "is_active").
		Values(entry.ID, entry.CustomerID, entry.ProductID, entry.IsActive).
		Suffix(`
			ON CONFLICT (customer_id, product_id) DO UPDATE SET
				is_active = EXCLUDED.is_active,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *matrixRepository) GetEntry(ctx context.Context, customerID, productID string) (*domain.MatrixEntry, error) {
	query, args, err := squirrel.
		Select("id", "customer_id", "product_id", "is_active", "created_at", "updated_at").
		From(matrixTable).
		Where(squirrel.Eq{"customer_id": customerID, "product_id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.MatrixEntry{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&entry.ID,
		&entry.CustomerID,
		&entry.ProductID,
		&entry.IsActive,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear entrada da matriz: %w", err)
	}

	return entry, nil
}

func (r *matrixRepository) ListByCustomer(ctx context.Context, customerID string, onlyActive bool) ([]*domain.MatrixEntry, error) {
	builder := squirrel.
		Select("id", "customer_id", "product_id", "is_active", "created_at", "updated_at").
		From(matrixTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("product_id ASC")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.MatrixEntry, 0)
	for rows.Next() {
		entry := &domain.MatrixEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.CustomerID,
			&entry.ProductID,
			&entry.IsActive,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear entrada da matriz: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// CountActive conta as entradas ativas da matriz: é o número de previsões
// esperadas de um ciclo, usado no percentual de completude do fechamento.
func (r *matrixRepository) CountActive(ctx context.Context) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(matrixTable).
		Where(squirrel.Eq{"is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar entradas da matriz: %w", err)
	}

	return count, nil
}
