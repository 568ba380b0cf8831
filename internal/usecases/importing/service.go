// Package importing grava registros do histórico de vendas no esquema
// canônico (ano e mês inteiros), validando linha a linha.
package importing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/utils"
)

// Limites do esquema canônico
const (
	MinYear = 2000
	MaxYear = 2100

	// amountTolerance absorve o arredondamento de duas casas dos valores
	// monetários nas checagens de consistência
	amountTolerance = 0.01
)

// Erros de importação do histórico
var (
	ErrInvalidRecord     = errors.New("registro fora do esquema canônico")
	ErrEmptyBatch        = errors.New("lote de importação vazio")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ImportError é um erro com contexto adicional da importação
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ImportError) Unwrap() error {
	return e.Err
}

type Importer interface {
	ImportBatch(ctx context.Context, records []*domain.SalesHistoryRecord) (*domain.SalesImportResult, error)
}

type Service struct {
	salesRepo repository.SalesHistoryRepository
}

func NewService(salesRepo repository.SalesHistoryRepository) Importer {
	return &Service{
		salesRepo: salesRepo,
	}
}

// ImportBatch processa o lote linha a linha: registros inválidos são
// rejeitados com o motivo no resultado, os válidos são gravados por upsert
// na chave (cliente, produto, ano, mês). O lote nunca é abortado por uma
// linha ruim.
func (s *Service) ImportBatch(ctx context.Context, records []*domain.SalesHistoryRecord) (*domain.SalesImportResult, error) {
	if len(records) == 0 {
		return nil, &ImportError{Err: ErrEmptyBatch, Code: apiErrors.ErrSalesRecordInvalid}
	}

	result := &domain.SalesImportResult{
		Errors: make([]string, 0),
	}

	for i, record := range records {
		if err := validateRecord(record); err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, fmt.Sprintf("linha %d: %v", i+1, err))
			continue
		}

		if record.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return nil, fmt.Errorf("erro ao gerar ID do registro: %w", err)
			}
			record.ID = id
		}

		if err := s.salesRepo.SaveOrUpdate(ctx, record); err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, fmt.Sprintf("linha %d: erro ao gravar registro", i+1))
			logrus.WithError(err).WithFields(logrus.Fields{
				"customer_id": record.CustomerID,
				"product_id":  record.ProductID,
				"year":        record.Year,
				"month":       record.Month,
			}).Error("Erro ao gravar registro do histórico de vendas")
			continue
		}

		result.Imported++
	}

	logrus.WithFields(logrus.Fields{
		"imported": result.Imported,
		"rejected": result.Rejected,
	}).Info("Importação do histórico de vendas concluída")

	return result, nil
}

func validateRecord(record *domain.SalesHistoryRecord) error {
	if record == nil {
		return ErrInvalidRecord
	}
	if record.CustomerID == "" {
		return fmt.Errorf("%w: cliente não informado", ErrInvalidRecord)
	}
	if record.ProductID == "" {
		return fmt.Errorf("%w: produto não informado", ErrInvalidRecord)
	}
	if record.Year < MinYear || record.Year > MaxYear {
		return fmt.Errorf("%w: ano %d fora do intervalo [%d, %d]", ErrInvalidRecord, record.Year, MinYear, MaxYear)
	}
	if record.Month < 1 || record.Month > 12 {
		return fmt.Errorf("%w: mês %d inválido", ErrInvalidRecord, record.Month)
	}
	if record.Quantity < 0 {
		return fmt.Errorf("%w: quantidade negativa", ErrInvalidRecord)
	}
	if record.UnitPrice < 0 {
		return fmt.Errorf("%w: preço unitário negativo", ErrInvalidRecord)
	}

	// O preço unitário carrega arredondamento de duas casas, então a
	// tolerância da receita cresce com a quantidade
	revenueTolerance := amountTolerance * math.Max(1, record.Quantity)
	if math.Abs(record.TotalSales-record.Quantity*record.UnitPrice) > revenueTolerance {
		return fmt.Errorf("%w: receita %.2f não corresponde a quantidade %.2f x preço %.2f",
			ErrInvalidRecord, record.TotalSales, record.Quantity, record.UnitPrice)
	}
	if math.Abs(record.GrossProfit-(record.TotalSales-record.Cogs)) > amountTolerance {
		return fmt.Errorf("%w: margem bruta %.2f não corresponde a receita %.2f menos custo %.2f",
			ErrInvalidRecord, record.GrossProfit, record.TotalSales, record.Cogs)
	}

	return nil
}
