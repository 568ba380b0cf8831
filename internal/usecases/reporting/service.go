// Package reporting monta o relatório de vendas em seções a partir das
// agregações do histórico, sob um tempo limite configurável.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/aggregating"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
)

const (
	defaultTimeoutSeconds = 30
	defaultTopN           = 10
)

type Reporter interface {
	Generate(ctx context.Context, req *domain.ReportRequest) (*domain.Report, error)
}

type Service struct {
	aggregator aggregating.Aggregator
	cfg        config.Report
}

func NewService(aggregator aggregating.Aggregator, cfg config.Report) Reporter {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = defaultTopN
	}

	return &Service{
		aggregator: aggregator,
		cfg:        cfg,
	}
}

// Generate valida a requisição, consulta as agregações sob o tempo limite e
// monta o relatório. Filtro sem registros produz um relatório com NoData
// ligado e nenhuma seção: ausência de dados nunca vira receita zero.
func (s *Service) Generate(ctx context.Context, req *domain.ReportRequest) (*domain.Report, error) {
	filter, label, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.cfg.DefaultTopN
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	started := time.Now()

	summary, err := s.aggregator.Summary(ctx, filter)
	if err != nil {
		return nil, s.wrapAggregationError(ctx, err)
	}

	report := &domain.Report{
		Type:        domain.ReportTypeSalesSummary,
		GeneratedAt: time.Now().UTC(),
		PeriodLabel: label,
	}

	if summary.RecordCount == 0 {
		report.NoData = true
		return report, nil
	}

	report.Summary = summary

	trends, err := s.aggregator.MonthlySeries(ctx, filter)
	if err != nil {
		return nil, s.wrapAggregationError(ctx, err)
	}
	report.MonthlyTrends = trends

	customers, err := s.aggregator.TopCustomers(ctx, filter, topN)
	if err != nil {
		return nil, s.wrapAggregationError(ctx, err)
	}
	report.TopCustomers = customers

	products, err := s.aggregator.TopProducts(ctx, filter, topN)
	if err != nil {
		return nil, s.wrapAggregationError(ctx, err)
	}
	report.TopProducts = products

	if req.IncludeCharts {
		report.Charts = buildCharts(trends, customers, products)
	}

	if req.IncludeRawData {
		records, err := s.aggregator.Records(ctx, filter)
		if err != nil {
			return nil, s.wrapAggregationError(ctx, err)
		}
		report.RawData = records
	}

	logrus.WithFields(logrus.Fields{
		"period":   label,
		"records":  summary.RecordCount,
		"duration": time.Since(started).String(),
	}).Info("Relatório de vendas gerado")

	return report, nil
}

// buildCharts converte as seções já agregadas em séries rotuladas, poupando o
// portal de reprocessar o relatório para plotar
func buildCharts(
	trends []*domain.MonthlyAggregate,
	customers []*domain.CustomerRevenue,
	products []*domain.ProductRevenue,
) []*domain.ReportChart {
	charts := make([]*domain.ReportChart, 0, 3)

	if len(trends) > 0 {
		chart := &domain.ReportChart{Title: "Receita mensal"}
		for _, m := range trends {
			chart.Labels = append(chart.Labels, fmt.Sprintf("%04d-%02d", m.Year, m.Month))
			chart.Values = append(chart.Values, m.Revenue)
		}
		charts = append(charts, chart)
	}

	if len(customers) > 0 {
		chart := &domain.ReportChart{Title: "Receita por cliente"}
		for _, c := range customers {
			chart.Labels = append(chart.Labels, c.CustomerName)
			chart.Values = append(chart.Values, c.Revenue)
		}
		charts = append(charts, chart)
	}

	if len(products) > 0 {
		chart := &domain.ReportChart{Title: "Receita por produto"}
		for _, p := range products {
			chart.Labels = append(chart.Labels, p.ProductName)
			chart.Values = append(chart.Values, p.Revenue)
		}
		charts = append(charts, chart)
	}

	return charts
}

// buildFilter valida a especificação e converte para o filtro do histórico.
// Ano+mês e intervalo de datas são mutuamente exclusivos.
func (s *Service) buildFilter(req *domain.ReportRequest) (*domain.SalesHistoryFilter, string, error) {
	if req == nil {
		return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid, "payload vazio")
	}

	if req.Type != "" && req.Type != domain.ReportTypeSalesSummary {
		return nil, "", NewReportError(ErrUnknownType, apiErrors.ErrReportInvalid, req.Type)
	}

	hasYearMonth := req.Year != nil
	hasRange := req.StartDate != nil || req.EndDate != nil

	if hasYearMonth && hasRange {
		return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
			"ano/mês e intervalo de datas são mutuamente exclusivos")
	}

	if !hasYearMonth && !hasRange {
		return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
			"informe ano (com mês opcional) ou intervalo de datas")
	}

	if req.Month != nil && !hasYearMonth {
		return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
			"mês exige ano")
	}

	filter := &domain.SalesHistoryFilter{}

	if hasYearMonth {
		if *req.Year < 2000 || *req.Year > 2100 {
			return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
				fmt.Sprintf("ano fora do intervalo permitido: %d", *req.Year))
		}
		filter.Year = req.Year

		label := fmt.Sprintf("%04d", *req.Year)
		if req.Month != nil {
			if *req.Month < 1 || *req.Month > 12 {
				return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
					fmt.Sprintf("mês inválido: %d", *req.Month))
			}
			filter.Month = req.Month
			label = fmt.Sprintf("%04d-%02d", *req.Year, *req.Month)
		}
		return filter, label, nil
	}

	if req.StartDate == nil || req.EndDate == nil {
		return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
			"intervalo de datas exige início e fim")
	}
	if req.EndDate.Before(*req.StartDate) {
		return nil, "", NewReportError(ErrInvalidRequest, apiErrors.ErrReportInvalid,
			"data de fim anterior à data de início")
	}

	filter.StartDate = req.StartDate
	filter.EndDate = req.EndDate
	label := fmt.Sprintf("%s a %s",
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))

	return filter, label, nil
}

// wrapAggregationError distingue estouro do tempo limite de falha de consulta
func (s *Service) wrapAggregationError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return NewReportError(ErrTimeout, apiErrors.ErrReportTimeout,
			fmt.Sprintf("tempo limite de %ds", s.cfg.TimeoutSeconds))
	}
	return NewReportError(err, apiErrors.ErrDatabaseOperation, "erro ao agregar histórico de vendas")
}
