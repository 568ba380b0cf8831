package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sop-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

type SalesHistoryRepository interface {
	FindByFilter(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.SalesHistoryRecord, error)
	SaveOrUpdate(ctx context.Context, record *domain.SalesHistoryRecord) error
}

// salesHistoryRepository consulta o histórico de vendas. Os nomes de tabela e das
// colunas de ano/mês vêm da configuração: o histórico já foi observado em produção
// sob dois esquemas incompatíveis (month vs month_num), e uma agregação que assume
// o esquema errado devolve zero linhas em silêncio. O mapeamento torna o esquema
// consultado explícito em vez de adivinhado.
type salesHistoryRepository struct {
	conn *postgres.Connection
	cfg  config.SalesHistory
}

func NewSalesHistoryRepository(conn *postgres.Connection, cfg config.SalesHistory) SalesHistoryRepository {
	if cfg.Table == "" {
		cfg.Table = "sales_history"
	}
	if cfg.YearColumn == "" {
		cfg.YearColumn = "year"
	}
	if cfg.MonthColumn == "" {
		cfg.MonthColumn = "month"
	}

	return &salesHistoryRepository{
		conn: conn,
		cfg:  cfg,
	}
}

func (r *salesHistoryRepository) FindByFilter(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.SalesHistoryRecord, error) {
	builder := squirrel.
		Select(
			"id", "customer_id", "customer_name", "product_id", "product_name",
			fmt.Sprintf("%s AS year", r.cfg.YearColumn),
			fmt.Sprintf("%s AS month", r.cfg.MonthColumn),
			"quantity", "unit_price", "total_sales", "cogs",
			"gross_profit", "gross_profit_pct", "sales_rep_id", "imported_at",
		).
		From(r.cfg.Table).
		OrderBy(fmt.Sprintf("%s ASC, %s ASC", r.cfg.YearColumn, r.cfg.MonthColumn))

	builder = r.applyFilter(builder, filter)

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.SalesHistoryRecord, 0)
	for rows.Next() {
		record := &domain.SalesHistoryRecord{}
		err := rows.Scan(
			&record.ID,
			&record.CustomerID,
			&record.CustomerName,
			&record.ProductID,
			&record.ProductName,
			&record.Year,
			&record.Month,
			&record.Quantity,
			&record.UnitPrice,
			&record.TotalSales,
			&record.Cogs,
			&record.GrossProfit,
			&record.GrossProfitPct,
			&record.SalesRepID,
			&record.ImportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de vendas: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *salesHistoryRepository) applyFilter(builder squirrel.SelectBuilder, filter *domain.SalesHistoryFilter) squirrel.SelectBuilder {
	if filter == nil {
		return builder
	}

	if filter.Year != nil {
		builder = builder.Where(squirrel.Eq{r.cfg.YearColumn: *filter.Year})
	}
	if filter.Month != nil {
		builder = builder.Where(squirrel.Eq{r.cfg.MonthColumn: *filter.Month})
	}
	// Intervalo de datas comparado em meses absolutos (ano*12 + mês)
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.Expr(
			fmt.Sprintf("(%s * 12 + %s) >= ?", r.cfg.YearColumn, r.cfg.MonthColumn),
			filter.StartDate.Year()*12+int(filter.StartDate.Month()),
		))
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.Expr(
			fmt.Sprintf("(%s * 12 + %s) <= ?", r.cfg.YearColumn, r.cfg.MonthColumn),
			filter.EndDate.Year()*12+int(filter.EndDate.Month()),
		))
	}
	if filter.CustomerID != "" {
		builder = builder.Where(squirrel.Eq{"customer_id": filter.CustomerID})
	}
	if filter.ProductID != "" {
		builder = builder.Where(squirrel.Eq{"product_id": filter.ProductID})
	}

	return builder
}

func (r *salesHistoryRepository) SaveOrUpdate(ctx context.Context, record *domain.SalesHistoryRecord) error {
	query, args, err := squirrel.
		Insert(r.cfg.Table).
		Columns(
			"id", "customer_id", "customer_name", "product_id", "product_name",
			r.cfg.YearColumn, r.cfg.MonthColumn,
			"quantity", "unit_price", "total_sales", "cogs",
			"gross_profit", "gross_profit_pct", "sales_rep_id",
		).
		Values(
			record.ID,
			record.CustomerID,
			record.CustomerName,
			record.ProductID,
			record.ProductName,
			record.Year,
			record.Month,
			record.Quantity,
			record.UnitPrice,
			record.TotalSales,
			record.Cogs,
			record.GrossProfit,
			record.GrossProfitPct,
			record.SalesRepID,
		).
		Suffix(fmt.Sprintf(`
			ON CONFLICT (customer_id, product_id, %s, %s) DO UPDATE SET
				customer_name = EXCLUDED.customer_name,
				product_name = EXCLUDED.product_name,
				quantity = EXCLUDED.quantity,
				unit_price = EXCLUDED.unit_price,
				total_sales = EXCLUDED.total_sales,
				cogs = EXCLUDED.cogs,
				gross_profit = EXCLUDED.gross_profit,
				gross_profit_pct = EXCLUDED.gross_profit_pct,
				sales_rep_id = EXCLUDED.sales_rep_id,
				imported_at = NOW()
		`, r.cfg.YearColumn, r.cfg.MonthColumn)).
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
