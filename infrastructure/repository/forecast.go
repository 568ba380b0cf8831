package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sop-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

const forecastsTable = "forecasts"

type ForecastRepository interface {
	Upsert(ctx context.Context, forecast *domain.Forecast) error
	GetByID(ctx context.Context, id string) (*domain.Forecast, error)
	GetByTriple(ctx context.Context, cycleID, customerID, productID string) (*domain.Forecast, error)
	ListByCycle(ctx context.Context, cycleID string) ([]*domain.Forecast, error)
	ListByCycleAndRep(ctx context.Context, cycleID string, salesRepID int) ([]*domain.Forecast, error)
	UpdateStatus(ctx context.Context, id string, status domain.ForecastStatus, submittedAt *time.Time) error
	CountByCycleAndStatus(ctx context.Context, cycleID string, statuses ...domain.ForecastStatus) (int, error)
}

type forecastRepository struct {
	conn *postgres.Connection
}

func NewForecastRepository(conn *postgres.Connection) ForecastRepository {
	return &forecastRepository{
		conn: conn,
	}
}

// Upsert grava a previsão pela tripla única (cycle_id, customer_id, product_id).
// Reenviar o mesmo payload em DRAFT sobrescreve a linha existente, nunca duplica.
func (r *forecastRepository) Upsert(ctx context.Context, forecast *domain.Forecast) error {
	monthsJSON, err := json.Marshal(forecast.Months)
	if err != nil {
		return fmt.Errorf("erro ao serializar meses para JSON: %w", err)
	}

	query, args, err := squirrel.
		Insert(forecastsTable).
		Columns("id", "cycle_id", "customer_id", "product_id", "sales_rep_id", "months", "status", "notes", "submitted_at").
		Values(
			forecast.ID,
			forecast.CycleID,
			forecast.CustomerID,
			forecast.ProductID,
			forecast.SalesRepID,
			monthsJSON,
			string(forecast.Status),
			forecast.Notes,
			forecast.SubmittedAt,
		).
		Suffix(`
			ON CONFLICT (cycle_id, customer_id, product_id) DO UPDATE SET
				sales_rep_id = EXCLUDED.sales_rep_id,
				months = EXCLUDED.months,
				status = EXCLUDED.status,
				notes = EXCLUDED.notes,
				submitted_at = EXCLUDED.submitted_at,
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

func (r *forecastRepository) GetByID(ctx context.Context, id string) (*domain.Forecast, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *forecastRepository) GetByTriple(ctx context.Context, cycleID, customerID, productID string) (*domain.Forecast, error) {
	return r.getOne(ctx, squirrel.Eq{
		"cycle_id":    cycleID,
		"customer_id": customerID,
		"product_id":  productID,
	})
}

func (r *forecastRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Forecast, error) {
	query, args, err := squirrel.
		Select(forecastColumns...).
		From(forecastsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	forecast, err := scanForecast(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear previsão: %w", err)
	}

	return forecast, nil
}

func (r *forecastRepository) ListByCycle(ctx context.Context, cycleID string) ([]*domain.Forecast, error) {
	return r.list(ctx, squirrel.Eq{"cycle_id": cycleID})
}

func (r *forecastRepository) ListByCycleAndRep(ctx context.Context, cycleID string, salesRepID int) ([]*domain.Forecast, error) {
	return r.list(ctx, squirrel.Eq{"cycle_id": cycleID, "sales_rep_id": salesRepID})
}

func (r *forecastRepository) list(ctx context.Context, where squirrel.Eq) ([]*domain.Forecast, error) {
	query, args, err := squirrel.
		Select(forecastColumns...).
		From(forecastsTable).
		Where(where).
		OrderBy("customer_id ASC", "product_id ASC").
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

	forecasts := make([]*domain.Forecast, 0)
	for rows.Next() {
		forecast, err := scanForecast(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear previsão: %w", err)
		}
		forecasts = append(forecasts, forecast)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return forecasts, nil
}

func (r *forecastRepository) UpdateStatus(ctx context.Context, id string, status domain.ForecastStatus, submittedAt *time.Time) error {
	builder := squirrel.
		Update(forecastsTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if submittedAt != nil {
		builder = builder.Set("submitted_at", *submittedAt)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
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

func (r *forecastRepository) CountByCycleAndStatus(ctx context.Context, cycleID string, statuses ...domain.ForecastStatus) (int, error) {
	statusValues := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusValues = append(statusValues, string(s))
	}

	query, args, err := squirrel.
		Select("COUNT(*)").
		From(forecastsTable).
		Where(squirrel.Eq{"cycle_id": cycleID, "status": statusValues}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar previsões: %w", err)
	}

	return count, nil
}

var forecastColumns = []string{
	"id", "cycle_id", "customer_id", "product_id", "sales_rep_id",
	"months", "status", "notes", "submitted_at", "created_at", "updated_at",
}

func scanForecast(row rowScanner) (*domain.Forecast, error) {
	forecast := &domain.Forecast{}
	var monthsJSON []byte
	var status string

	err := row.Scan(
		&forecast.ID,
		&forecast.CycleID,
		&forecast.CustomerID,
		&forecast.ProductID,
		&forecast.SalesRepID,
		&monthsJSON,
		&status,
		&forecast.Notes,
		&forecast.SubmittedAt,
		&forecast.CreatedAt,
		&forecast.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	forecast.Status = domain.ForecastStatus(status)
	if !forecast.Status.Valid() {
		return nil, fmt.Errorf("status de previsão desconhecido no banco: %q", status)
	}

	if monthsJSON != nil {
		months := make([]domain.MonthlyForecast, 0)
		if err := json.Unmarshal(monthsJSON, &months); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de meses: %w", err)
		}
		forecast.Months = months
	}

	return forecast, nil
}
