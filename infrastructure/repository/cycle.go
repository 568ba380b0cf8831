package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sop-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

const cyclesTable = "cycles"

// ErrDuplicateCycle indica violação da unicidade de (year, month)
var ErrDuplicateCycle = errors.New("cycle already exists for year/month")

type CycleRepository interface {
	Create(ctx context.Context, cycle *domain.Cycle) error
	GetByID(ctx context.Context, id string) (*domain.Cycle, error)
	GetOpen(ctx context.Context) (*domain.Cycle, error)
	List(ctx context.Context) ([]*domain.Cycle, error)
	OpenExclusive(ctx context.Context, id string) (bool, error)
	Close(ctx context.Context, id string) error
}

type cycleRepository struct {
	conn *postgres.Connection
}

func NewCycleRepository(conn *postgres.Connection) CycleRepository {
	return &cycleRepository{
		conn: conn,
	}
}

func (r *cycleRepository) Create(ctx context.Context, cycle *domain.Cycle) error {
	query, args, err := squirrel.
		Insert(cyclesTable).
		Columns("id", "name", "status", "year", "month", "start_date", "end_date", "planning_start_month", "created_by").
		Values(
			cycle.ID,
			cycle.Name,
			string(cycle.Status),
			cycle.Year,
			cycle.Month,
			cycle.StartDate,
			cycle.EndDate,
			cycle.PlanningStartMonth,
			cycle.CreatedBy,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateCycle
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *cycleRepository) GetByID(ctx context.Context, id string) (*domain.Cycle, error) {
	query, args, err := squirrel.
		Select(cycleColumns...).
		From(cyclesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	cycle, err := r.scanCycle(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ciclo: %w", err)
	}

	return cycle, nil
}

func (r *cycleRepository) GetOpen(ctx context.Context) (*domain.Cycle, error) {
	query, args, err := squirrel.
		Select(cycleColumns...).
		From(cyclesTable).
		Where(squirrel.Eq{"status": string(domain.CycleStatusOpen)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	cycle, err := r.scanCycle(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ciclo: %w", err)
	}

	return cycle, nil
}

func (r *cycleRepository) List(ctx context.Context) ([]*domain.Cycle, error) {
	query, args, err := squirrel.
		Select(cycleColumns...).
		From(cyclesTable).
		OrderBy("year DESC", "month DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	cycles := make([]*domain.Cycle, 0)
	for rows.Next() {
		cycle, err := r.scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear ciclo: %w", err)
		}
		cycles = append(cycles, cycle)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return cycles, nil
}

// OpenExclusive transiciona o ciclo para OPEN em uma única operação atômica,
// condicionada a não existir nenhum outro ciclo OPEN. Evita a corrida de dois
// administradores abrindo ciclos ao mesmo tempo (leitura e escrita separadas).
func (r *cycleRepository) OpenExclusive(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $1, updated_at = NOW()
		WHERE id = $2
		  AND status = $3
		  AND NOT EXISTS (SELECT 1 FROM %s WHERE status = $1)
	`, cyclesTable, cyclesTable)

	result, err := r.conn.Exec(ctx, query,
		string(domain.CycleStatusOpen),
		id,
		string(domain.CycleStatusDraft),
	)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *cycleRepository) Close(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Update(cyclesTable).
		Set("status", string(domain.CycleStatusClosed)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.CycleStatusOpen)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

var cycleColumns = []string{
	"id", "name", "status", "year", "month",
	"start_date", "end_date", "planning_start_month",
	"created_by", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *cycleRepository) scanCycle(row rowScanner) (*domain.Cycle, error) {
	cycle := &domain.Cycle{}
	var status string

	err := row.Scan(
		&cycle.ID,
		&cycle.Name,
		&status,
		&cycle.Year,
		&cycle.Month,
		&cycle.StartDate,
		&cycle.EndDate,
		&cycle.PlanningStartMonth,
		&cycle.CreatedBy,
		&cycle.CreatedAt,
		&cycle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cycle.Status = domain.CycleStatus(status)
	if !cycle.Status.Valid() {
		return nil, fmt.Errorf("status de ciclo desconhecido no banco: %q", status)
	}

	return cycle, nil
}
