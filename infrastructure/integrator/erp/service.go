// Package erp integra o portal ao ERP corporativo, fonte do histórico
// consolidado de vendas.
package erp

import (
	"fmt"

	"github.com/pkg/errors"
	erpdomain "github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

type ErpIntegrator interface {
	GetMonthlySales(params erpdomain.GetSalesParams) ([]*domain.SalesHistoryRecord, error)
	CheckConnection() (bool, error)
}

type ErpService struct {
	cfg    *config.Config
	Client erpclient.Client
}

func New(cfg *config.Config, client erpclient.Client) ErpIntegrator {
	return &ErpService{
		cfg:    cfg,
		Client: client,
	}
}

// GetMonthlySales consulta as vendas consolidadas de um mês no ERP e converte
// as linhas para o esquema canônico do histórico (ano e mês inteiros). A
// margem bruta é derivada aqui: o ERP só devolve receita e custo.
func (s *ErpService) GetMonthlySales(params erpdomain.GetSalesParams) ([]*domain.SalesHistoryRecord, error) {
	paramsClient := erpclient.SalesConsultationParams{
		Year:  params.Year,
		Month: params.Month,
	}

	lines, err := s.Client.GetMonthlySales(paramsClient, &s.cfg.Erp)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao consultar vendas de %04d-%02d no ERP", params.Year, params.Month)
	}

	records := make([]*domain.SalesHistoryRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, convertLine(line))
	}

	return records, nil
}

// CheckConnection valida as credenciais contra o ERP com uma consulta mínima
func (s *ErpService) CheckConnection() (bool, error) {
	_, err := s.Client.GetMonthlySales(erpclient.SalesConsultationParams{Year: 2000, Month: 1}, &s.cfg.Erp)
	if err != nil {
		return false, err
	}

	return true, nil
}

func convertLine(line erpdomain.SaleLine) *domain.SalesHistoryRecord {
	grossProfit := line.TotalSales - line.Cogs

	grossProfitPct := 0.0
	if line.TotalSales != 0 {
		grossProfitPct = grossProfit / line.TotalSales * 100
	}

	return &domain.SalesHistoryRecord{
		CustomerID:     line.CustomerCode,
		CustomerName:   line.CustomerName,
		ProductID:      line.ProductCode,
		ProductName:    line.ProductName,
		Year:           line.Year,
		Month:          line.Month,
		Quantity:       line.Quantity,
		UnitPrice:      line.UnitPrice,
		TotalSales:     line.TotalSales,
		Cogs:           line.Cogs,
		GrossProfit:    grossProfit,
		GrossProfitPct: grossProfitPct,
		SalesRepID:     line.SalesRepCode,
	}
}

// Descrição amigável do destino para logs de sincronização
func (s *ErpService) String() string {
	return fmt.Sprintf("erp[%s]", s.cfg.Erp.URL)
}
