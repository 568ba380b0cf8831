// Package forecasting implementa o envio, a submissão e a revisão das
// previsões de venda dentro de um ciclo de planejamento aberto.
package forecasting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/infrastructure/notification"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/planning"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/utils"
)

type Forecaster interface {
	Upsert(ctx context.Context, cycleID, customerID string, salesRepID int, payload *domain.ForecastPayload) (*domain.Forecast, error)
	BulkUpsert(ctx context.Context, cycleID, customerID string, salesRepID int, payloads []*domain.ForecastPayload) (*domain.BulkForecastResult, error)
	Submit(ctx context.Context, forecastID string, salesRepID int) (*domain.Forecast, error)
	Approve(ctx context.Context, forecastID string, reviewerID int) (*domain.Forecast, error)
	Reject(ctx context.Context, forecastID string, reviewerID int, reason string) (*domain.Forecast, error)
	GetByID(ctx context.Context, forecastID string) (*domain.Forecast, error)
	ListByCycle(ctx context.Context, cycleID string) ([]*domain.Forecast, error)
	ListByCycleAndRep(ctx context.Context, cycleID string, salesRepID int) ([]*domain.Forecast, error)
}

type Service struct {
	forecastRepo repository.ForecastRepository
	cycleRepo    repository.CycleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	matrixRepo   repository.MatrixRepository
	notifier     notification.Notifier
	leadTimeDays int
}

func NewService(
	forecastRepo repository.ForecastRepository,
	cycleRepo repository.CycleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	matrixRepo repository.MatrixRepository,
	notifier notification.Notifier,
	leadTimeDays int,
) Forecaster {
	return &Service{
		forecastRepo: forecastRepo,
		cycleRepo:    cycleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		matrixRepo:   matrixRepo,
		notifier:     notifier,
		leadTimeDays: leadTimeDays,
	}
}

// Upsert grava a previsão da tripla (ciclo, cliente, produto). Reenviar o mesmo
// payload sobrescreve a linha existente quando ela ainda está editável (DRAFT
// ou REJECTED); previsões SUBMITTED ou APPROVED são imutáveis para o vendedor.
func (s *Service) Upsert(ctx context.Context, cycleID, customerID string, salesRepID int, payload *domain.ForecastPayload) (*domain.Forecast, error) {
	cycle, err := s.openCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	if err := s.validatePayload(ctx, cycle, customerID, payload); err != nil {
		return nil, err
	}

	existing, err := s.forecastRepo.GetByTriple(ctx, cycleID, customerID, payload.ProductID)
	if err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar previsão existente")
	}

	forecast := &domain.Forecast{
		CycleID:    cycleID,
		CustomerID: customerID,
		ProductID:  payload.ProductID,
		SalesRepID: salesRepID,
		Months:     payload.Months,
		Status:     domain.ForecastStatusDraft,
		Notes:      payload.Notes,
	}

	if existing != nil {
		if !existing.Status.Editable() {
			return nil, NewForecastIDError(ErrNotEditable, apiErrors.ErrForecastInvalidState, existing.ID,
				fmt.Sprintf("previsão em %s", existing.Status))
		}
		forecast.ID = existing.ID
	} else {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar ID da previsão: %w", err)
		}
		forecast.ID = id
	}

	if err := s.forecastRepo.Upsert(ctx, forecast); err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao gravar previsão")
	}

	return forecast, nil
}

// BulkUpsert processa um lote de previsões do mesmo cliente. Cada item é
// independente: um item inválido entra no resultado como falha sem derrubar
// o restante do lote.
func (s *Service) BulkUpsert(ctx context.Context, cycleID, customerID string, salesRepID int, payloads []*domain.ForecastPayload) (*domain.BulkForecastResult, error) {
	if len(payloads) == 0 {
		return nil, NewForecastError(ErrInvalidPayload, apiErrors.ErrForecastValidation, "lote vazio")
	}

	if _, err := s.openCycle(ctx, cycleID); err != nil {
		return nil, err
	}

	result := &domain.BulkForecastResult{
		Items: make([]domain.BulkForecastItemResult, 0, len(payloads)),
	}

	for _, payload := range payloads {
		item := domain.BulkForecastItemResult{ProductID: payload.ProductID}

		existing, err := s.forecastRepo.GetByTriple(ctx, cycleID, customerID, payload.ProductID)
		if err != nil {
			item.Error = "erro ao consultar previsão existente"
			result.Failed++
			result.Items = append(result.Items, item)
			continue
		}

		if _, err := s.Upsert(ctx, cycleID, customerID, salesRepID, payload); err != nil {
			item.Error = err.Error()
			result.Failed++
			result.Items = append(result.Items, item)
			continue
		}

		if existing != nil {
			item.Updated = true
			result.Updated++
		} else {
			item.Created = true
			result.Created++
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// Submit transiciona a previsão de DRAFT/REJECTED para SUBMITTED, desde que o
// prazo de submissão do ciclo ainda não tenha expirado.
func (s *Service) Submit(ctx context.Context, forecastID string, salesRepID int) (*domain.Forecast, error) {
	forecast, err := s.getForecast(ctx, forecastID)
	if err != nil {
		return nil, err
	}

	if !forecast.Status.Editable() {
		return nil, NewForecastIDError(ErrInvalidStatus, apiErrors.ErrForecastInvalidState, forecastID,
			fmt.Sprintf("previsão em %s não pode ser submetida", forecast.Status))
	}

	cycle, err := s.openCycle(ctx, forecast.CycleID)
	if err != nil {
		return nil, err
	}

	deadline := planning.DeadlineFor(cycle, s.leadTimeDays)
	now := time.Now().UTC()
	if now.After(deadline) {
		return nil, NewForecastIDError(ErrDeadlineExceeded, apiErrors.ErrForecastDeadline, forecastID,
			fmt.Sprintf("prazo era %s", deadline.Format(time.RFC3339)))
	}

	if err := s.forecastRepo.UpdateStatus(ctx, forecastID, domain.ForecastStatusSubmitted, &now); err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao submeter previsão")
	}

	forecast.Status = domain.ForecastStatusSubmitted
	forecast.SubmittedAt = &now

	logrus.WithFields(logrus.Fields{
		"forecast_id":  forecastID,
		"cycle_id":     forecast.CycleID,
		"sales_rep_id": salesRepID,
	}).Info("Previsão submetida")

	return forecast, nil
}

// Approve transiciona a previsão de SUBMITTED para APPROVED
func (s *Service) Approve(ctx context.Context, forecastID string, reviewerID int) (*domain.Forecast, error) {
	return s.review(ctx, forecastID, reviewerID, domain.ForecastStatusApproved, "")
}

// Reject transiciona a previsão de SUBMITTED para REJECTED, devolvendo-a ao
// vendedor para correção.
func (s *Service) Reject(ctx context.Context, forecastID string, reviewerID int, reason string) (*domain.Forecast, error) {
	return s.review(ctx, forecastID, reviewerID, domain.ForecastStatusRejected, reason)
}

func (s *Service) review(ctx context.Context, forecastID string, reviewerID int, target domain.ForecastStatus, reason string) (*domain.Forecast, error) {
	forecast, err := s.getForecast(ctx, forecastID)
	if err != nil {
		return nil, err
	}

	if forecast.Status != domain.ForecastStatusSubmitted {
		return nil, NewForecastIDError(ErrInvalidStatus, apiErrors.ErrForecastInvalidState, forecastID,
			fmt.Sprintf("previsão em %s não pode ser revisada", forecast.Status))
	}

	if err := s.forecastRepo.UpdateStatus(ctx, forecastID, target, nil); err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao atualizar status da previsão")
	}

	forecast.Status = target

	event := notification.EventForecastApproved
	if target == domain.ForecastStatusRejected {
		event = notification.EventForecastRejected
	}

	notification.Dispatch(ctx, s.notifier, event, map[string]any{
		"forecast_id":  forecastID,
		"cycle_id":     forecast.CycleID,
		"customer_id":  forecast.CustomerID,
		"product_id":   forecast.ProductID,
		"sales_rep_id": forecast.SalesRepID,
		"reviewer_id":  reviewerID,
		"reason":       reason,
	})

	return forecast, nil
}

func (s *Service) GetByID(ctx context.Context, forecastID string) (*domain.Forecast, error) {
	return s.getForecast(ctx, forecastID)
}

func (s *Service) ListByCycle(ctx context.Context, cycleID string) ([]*domain.Forecast, error) {
	forecasts, err := s.forecastRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao listar previsões")
	}
	return forecasts, nil
}

func (s *Service) ListByCycleAndRep(ctx context.Context, cycleID string, salesRepID int) ([]*domain.Forecast, error) {
	forecasts, err := s.forecastRepo.ListByCycleAndRep(ctx, cycleID, salesRepID)
	if err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao listar previsões")
	}
	return forecasts, nil
}

func (s *Service) getForecast(ctx context.Context, forecastID string) (*domain.Forecast, error) {
	forecast, err := s.forecastRepo.GetByID(ctx, forecastID)
	if err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar previsão")
	}
	if forecast == nil {
		return nil, NewForecastIDError(ErrForecastNotFound, apiErrors.ErrForecastNotFound, forecastID, "")
	}
	return forecast, nil
}

func (s *Service) openCycle(ctx context.Context, cycleID string) (*domain.Cycle, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar ciclo")
	}
	if cycle == nil {
		return nil, NewForecastError(ErrCycleNotFound, apiErrors.ErrCycleNotFound, cycleID)
	}
	if cycle.Status != domain.CycleStatusOpen {
		return nil, NewForecastError(ErrCycleNotOpen, apiErrors.ErrCycleInvalidState,
			fmt.Sprintf("ciclo %s está em %s", cycleID, cycle.Status))
	}
	return cycle, nil
}

// validatePayload aplica as regras de aceitação de uma previsão: cliente e
// produto ativos, combinação habilitada na matriz, meses cobrindo exatamente
// os 16 meses do período do ciclo e valores não negativos.
func (s *Service) validatePayload(ctx context.Context, cycle *domain.Cycle, customerID string, payload *domain.ForecastPayload) error {
	if payload == nil || payload.ProductID == "" {
		return NewForecastError(ErrInvalidPayload, apiErrors.ErrForecastValidation, "produto não informado")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar cliente")
	}
	if customer == nil {
		return NewForecastError(ErrCustomerNotFound, apiErrors.ErrForecastValidation, customerID)
	}
	if !customer.Active {
		return NewForecastError(ErrCustomerInactive, apiErrors.ErrForecastValidation, customerID)
	}

	product, err := s.productRepo.GetByID(ctx, payload.ProductID)
	if err != nil {
		return NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar produto")
	}
	if product == nil {
		return NewForecastError(ErrProductNotFound, apiErrors.ErrForecastValidation, payload.ProductID)
	}
	if !product.Active {
		return NewForecastError(ErrProductInactive, apiErrors.ErrForecastValidation, payload.ProductID)
	}

	entry, err := s.matrixRepo.GetEntry(ctx, customerID, payload.ProductID)
	if err != nil {
		return NewForecastError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar matriz")
	}
	if entry == nil || !entry.IsActive {
		return NewForecastError(ErrMatrixNotAllowed, apiErrors.ErrForecastValidation,
			fmt.Sprintf("cliente %s x produto %s", customerID, payload.ProductID))
	}

	// A lista mensal acompanha o período inteiro, meses históricos inclusive:
	// eles carregam o realizado que ancora a projeção.
	expected := planning.CalculatePeriod(cycle.StartDate).Months

	if len(payload.Months) != len(expected) {
		return NewForecastError(ErrMonthsOutOfPeriod, apiErrors.ErrForecastValidation,
			fmt.Sprintf("esperados %d meses, recebidos %d", len(expected), len(payload.Months)))
	}

	for i, m := range payload.Months {
		if m.Year != expected[i].Year || m.Month != expected[i].Month {
			return NewForecastError(ErrMonthsOutOfPeriod, apiErrors.ErrForecastValidation,
				fmt.Sprintf("posição %d: esperado %04d-%02d, recebido %04d-%02d",
					i, expected[i].Year, expected[i].Month, m.Year, m.Month))
		}
		if m.Quantity < 0 || m.UnitPrice < 0 {
			return NewForecastError(ErrNegativeValues, apiErrors.ErrForecastValidation,
				fmt.Sprintf("mês %04d-%02d", m.Year, m.Month))
		}
	}

	return nil
}
