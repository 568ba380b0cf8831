// Package aggregating calcula as estatísticas do histórico de vendas: resumo,
// série temporal mensal e rankings de clientes e produtos por receita.
//
// As somas usam aritmética decimal para que acumulados longos de valores
// monetários não carreguem erro binário de ponto flutuante.
package aggregating

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/utils"
)

type Aggregator interface {
	Summary(ctx context.Context, filter *domain.SalesHistoryFilter) (*domain.SalesSummary, error)
	MonthlySeries(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.MonthlyAggregate, error)
	TopCustomers(ctx context.Context, filter *domain.SalesHistoryFilter, limit int) ([]*domain.CustomerRevenue, error)
	TopProducts(ctx context.Context, filter *domain.SalesHistoryFilter, limit int) ([]*domain.ProductRevenue, error)
	Records(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.SalesHistoryRecord, error)
}

type Service struct {
	salesRepo repository.SalesHistoryRepository
}

func NewService(salesRepo repository.SalesHistoryRepository) Aggregator {
	return &Service{
		salesRepo: salesRepo,
	}
}

// Summary calcula as estatísticas agregadas do filtro. Sem registros, o resumo
// volta zerado com RecordCount = 0; a distinção entre "sem dados" e "receita
// zero" é responsabilidade do chamador.
func (s *Service) Summary(ctx context.Context, filter *domain.SalesHistoryFilter) (*domain.SalesSummary, error) {
	records, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &domain.SalesSummary{RecordCount: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	var (
		totalQuantity  = decimal.Zero
		totalRevenue   = decimal.Zero
		totalCogs      = decimal.Zero
		totalProfit    = decimal.Zero
		totalUnitPrice = decimal.Zero
	)

	minQty := records[0].Quantity
	maxQty := records[0].Quantity

	for _, r := range records {
		totalQuantity = totalQuantity.Add(decimal.NewFromFloat(r.Quantity))
		totalRevenue = totalRevenue.Add(decimal.NewFromFloat(r.TotalSales))
		totalCogs = totalCogs.Add(decimal.NewFromFloat(r.Cogs))
		totalProfit = totalProfit.Add(decimal.NewFromFloat(r.GrossProfit))
		totalUnitPrice = totalUnitPrice.Add(decimal.NewFromFloat(r.UnitPrice))

		if r.Quantity < minQty {
			minQty = r.Quantity
		}
		if r.Quantity > maxQty {
			maxQty = r.Quantity
		}
	}

	count := decimal.NewFromInt(int64(len(records)))

	summary.TotalQuantity = totalQuantity.InexactFloat64()
	summary.TotalRevenue = totalRevenue.InexactFloat64()
	summary.TotalCogs = totalCogs.InexactFloat64()
	summary.TotalGrossProfit = totalProfit.InexactFloat64()
	summary.AverageQuantity = utils.RoundWithTwoDecimalPlace(totalQuantity.Div(count).InexactFloat64())
	summary.AverageUnitPrice = utils.RoundWithTwoDecimalPlace(totalUnitPrice.Div(count).InexactFloat64())
	summary.MinQuantity = minQty
	summary.MaxQuantity = maxQty

	// Margem bruta só é definida com receita diferente de zero
	if !totalRevenue.IsZero() {
		summary.GrossProfitPct = utils.RoundWithTwoDecimalPlace(totalProfit.
			Div(totalRevenue).
			Mul(decimal.NewFromInt(100)).
			InexactFloat64())
	}

	return summary, nil
}

// MonthlySeries agrega os registros por (ano, mês) em ordem cronológica.
// Meses sem registro não aparecem na série.
func (s *Service) MonthlySeries(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.MonthlyAggregate, error) {
	records, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		quantity decimal.Decimal
		revenue  decimal.Decimal
		profit   decimal.Decimal
		count    int
	}

	buckets := make(map[int]*bucket)
	for _, r := range records {
		key := r.Year*12 + r.Month - 1
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				quantity: decimal.Zero,
				revenue:  decimal.Zero,
				profit:   decimal.Zero,
			}
			buckets[key] = b
		}
		b.quantity = b.quantity.Add(decimal.NewFromFloat(r.Quantity))
		b.revenue = b.revenue.Add(decimal.NewFromFloat(r.TotalSales))
		b.profit = b.profit.Add(decimal.NewFromFloat(r.GrossProfit))
		b.count++
	}

	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	series := make([]*domain.MonthlyAggregate, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		series = append(series, &domain.MonthlyAggregate{
			Year:        key / 12,
			Month:       key%12 + 1,
			Quantity:    b.quantity.InexactFloat64(),
			Revenue:     b.revenue.InexactFloat64(),
			GrossProfit: b.profit.InexactFloat64(),
			RecordCount: b.count,
		})
	}

	return series, nil
}

type revenueBucket struct {
	id       string
	name     string
	quantity decimal.Decimal
	revenue  decimal.Decimal
	profit   decimal.Decimal
}

// TopCustomers retorna os clientes ordenados por receita decrescente,
// limitados a limit posições.
func (s *Service) TopCustomers(ctx context.Context, filter *domain.SalesHistoryFilter, limit int) ([]*domain.CustomerRevenue, error) {
	records, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := rankBy(records, func(r *domain.SalesHistoryRecord) (string, string) {
		return r.CustomerID, r.CustomerName
	}, limit)

	ranking := make([]*domain.CustomerRevenue, 0, len(buckets))
	for i, b := range buckets {
		ranking = append(ranking, &domain.CustomerRevenue{
			Position:     i + 1,
			CustomerID:   b.id,
			CustomerName: b.name,
			Quantity:     b.quantity.InexactFloat64(),
			Revenue:      b.revenue.InexactFloat64(),
			GrossProfit:  b.profit.InexactFloat64(),
		})
	}

	return ranking, nil
}

// TopProducts retorna os produtos ordenados por receita decrescente,
// limitados a limit posições.
func (s *Service) TopProducts(ctx context.Context, filter *domain.SalesHistoryFilter, limit int) ([]*domain.ProductRevenue, error) {
	records, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := rankBy(records, func(r *domain.SalesHistoryRecord) (string, string) {
		return r.ProductID, r.ProductName
	}, limit)

	ranking := make([]*domain.ProductRevenue, 0, len(buckets))
	for i, b := range buckets {
		ranking = append(ranking, &domain.ProductRevenue{
			Position:    i + 1,
			ProductID:   b.id,
			ProductName: b.name,
			Quantity:    b.quantity.InexactFloat64(),
			Revenue:     b.revenue.InexactFloat64(),
			GrossProfit: b.profit.InexactFloat64(),
		})
	}

	return ranking, nil
}

func (s *Service) Records(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.SalesHistoryRecord, error) {
	return s.fetch(ctx, filter)
}

func (s *Service) fetch(ctx context.Context, filter *domain.SalesHistoryFilter) ([]*domain.SalesHistoryRecord, error) {
	records, err := s.salesRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, NewAggregationError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar histórico de vendas")
	}
	return records, nil
}

// rankBy agrupa os registros pela chave, ordena por receita decrescente (com
// desempate pelo ID para um ranking estável) e corta em limit.
func rankBy(records []*domain.SalesHistoryRecord, keyFn func(*domain.SalesHistoryRecord) (string, string), limit int) []*revenueBucket {
	buckets := make(map[string]*revenueBucket)
	for _, r := range records {
		id, name := keyFn(r)
		b, ok := buckets[id]
		if !ok {
			b = &revenueBucket{
				id:       id,
				name:     name,
				quantity: decimal.Zero,
				revenue:  decimal.Zero,
				profit:   decimal.Zero,
			}
			buckets[id] = b
		}
		b.quantity = b.quantity.Add(decimal.NewFromFloat(r.Quantity))
		b.revenue = b.revenue.Add(decimal.NewFromFloat(r.TotalSales))
		b.profit = b.profit.Add(decimal.NewFromFloat(r.GrossProfit))
	}

	ordered := make([]*revenueBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].revenue.Equal(ordered[j].revenue) {
			return ordered[i].revenue.GreaterThan(ordered[j].revenue)
		}
		return ordered[i].id < ordered[j].id
	})

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}

	return ordered
}
