// Package cycling gerencia o ciclo de vida das rodadas de planejamento S&OP:
// criação, abertura exclusiva, fechamento com resumo de completude e consulta.
package cycling

import (
	"context"
	"database/sql"
	"errors"
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

type CycleManager interface {
	Create(ctx context.Context, req *domain.CreateCycleRequest, createdBy int) (*domain.Cycle, error)
	Open(ctx context.Context, cycleID string) (*domain.Cycle, error)
	Close(ctx context.Context, cycleID string) (*domain.CycleCloseSummary, error)
	GetByID(ctx context.Context, cycleID string) (*domain.Cycle, error)
	GetCurrent(ctx context.Context) (*domain.Cycle, *domain.PlanningPeriod, error)
	List(ctx context.Context) ([]*domain.Cycle, error)
}

type Service struct {
	cycleRepo    repository.CycleRepository
	forecastRepo repository.ForecastRepository
	matrixRepo   repository.MatrixRepository
	notifier     notification.Notifier
}

func NewService(
	cycleRepo repository.CycleRepository,
	forecastRepo repository.ForecastRepository,
	matrixRepo repository.MatrixRepository,
	notifier notification.Notifier,
) CycleManager {
	return &Service{
		cycleRepo:    cycleRepo,
		forecastRepo: forecastRepo,
		matrixRepo:   matrixRepo,
		notifier:     notifier,
	}
}

// Create registra um novo ciclo em DRAFT. A dupla (ano, mês) é única: a
// violação vira erro de duplicidade, nunca um segundo ciclo.
func (s *Service) Create(ctx context.Context, req *domain.CreateCycleRequest, createdBy int) (*domain.Cycle, error) {
	if req == nil {
		return nil, NewCycleError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "payload vazio")
	}

	if req.Year < 2000 || req.Year > 2100 {
		return nil, NewCycleError(ErrInvalidRequest, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("ano fora do intervalo permitido: %d", req.Year))
	}

	if req.Month < 1 || req.Month > 12 {
		return nil, NewCycleError(ErrInvalidRequest, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("mês inválido: %d", req.Month))
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, NewCycleError(ErrInvalidRequest, apiErrors.ErrInvalidRequest,
			"data de fim anterior à data de início")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do ciclo: %w", err)
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Ciclo S&OP %04d-%02d", req.Year, req.Month)
	}

	startDate := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	period := planning.CalculatePeriod(startDate)

	cycle := &domain.Cycle{
		ID:                 id,
		Name:               name,
		Status:             domain.CycleStatusDraft,
		Year:               req.Year,
		Month:              req.Month,
		StartDate:          startDate,
		EndDate:            req.EndDate,
		PlanningStartMonth: fmt.Sprintf("%04d-%02d", period.StartYear, period.StartMonth),
		CreatedBy:          createdBy,
	}

	if err := s.cycleRepo.Create(ctx, cycle); err != nil {
		if errors.Is(err, repository.ErrDuplicateCycle) {
			return nil, NewCycleError(ErrCycleDuplicate, apiErrors.ErrCycleDuplicate,
				fmt.Sprintf("já existe ciclo para %04d-%02d", req.Year, req.Month))
		}
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao criar ciclo")
	}

	return cycle, nil
}

// Open transiciona o ciclo de DRAFT para OPEN. A exclusividade (um único OPEN
// no sistema) é garantida pelo repositório em uma única escrita condicional.
func (s *Service) Open(ctx context.Context, cycleID string) (*domain.Cycle, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar ciclo")
	}
	if cycle == nil {
		return nil, NewCycleIDError(ErrCycleNotFound, apiErrors.ErrCycleNotFound, cycleID, "")
	}

	if cycle.Status != domain.CycleStatusDraft {
		return nil, NewCycleIDError(ErrInvalidTransition, apiErrors.ErrCycleInvalidState, cycleID,
			fmt.Sprintf("ciclo em %s não pode ser aberto", cycle.Status))
	}

	opened, err := s.cycleRepo.OpenExclusive(ctx, cycleID)
	if err != nil {
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao abrir ciclo")
	}

	if !opened {
		// A escrita condicional não afetou nenhuma linha: ou outro ciclo já está
		// aberto, ou este saiu de DRAFT entre a leitura e a escrita.
		open, err := s.cycleRepo.GetOpen(ctx)
		if err == nil && open != nil && open.ID != cycleID {
			return nil, NewCycleIDError(ErrCycleAlreadyOpen, apiErrors.ErrCycleAlreadyOpen, open.ID,
				fmt.Sprintf("ciclo %s já está aberto", open.ID))
		}
		return nil, NewCycleIDError(ErrInvalidTransition, apiErrors.ErrCycleInvalidState, cycleID,
			"ciclo não está mais em DRAFT")
	}

	cycle.Status = domain.CycleStatusOpen

	notification.Dispatch(ctx, s.notifier, notification.EventCycleOpened, map[string]any{
		"cycle_id":   cycle.ID,
		"cycle_name": cycle.Name,
		"year":       cycle.Year,
		"month":      cycle.Month,
	})

	logrus.WithFields(logrus.Fields{
		"cycle_id": cycle.ID,
		"year":     cycle.Year,
		"month":    cycle.Month,
	}).Info("Ciclo de planejamento aberto")

	return cycle, nil
}

// Close transiciona o ciclo de OPEN para CLOSED e devolve o resumo de
// completude: previsões submetidas/aprovadas sobre as esperadas pela matriz
// ativa cliente-produto.
func (s *Service) Close(ctx context.Context, cycleID string) (*domain.CycleCloseSummary, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar ciclo")
	}
	if cycle == nil {
		return nil, NewCycleIDError(ErrCycleNotFound, apiErrors.ErrCycleNotFound, cycleID, "")
	}

	if cycle.Status != domain.CycleStatusOpen {
		return nil, NewCycleIDError(ErrInvalidTransition, apiErrors.ErrCycleInvalidState, cycleID,
			fmt.Sprintf("ciclo em %s não pode ser fechado", cycle.Status))
	}

	if err := s.cycleRepo.Close(ctx, cycleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewCycleIDError(ErrInvalidTransition, apiErrors.ErrCycleInvalidState, cycleID,
				"ciclo não está mais aberto")
		}
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao fechar ciclo")
	}

	cycle.Status = domain.CycleStatusClosed

	summary, err := s.buildCloseSummary(ctx, cycle)
	if err != nil {
		// O fechamento já foi persistido; o resumo degradado não desfaz a transição
		logrus.WithError(err).WithField("cycle_id", cycleID).Error("Erro ao montar resumo de fechamento")
		summary = &domain.CycleCloseSummary{Cycle: cycle}
	}

	notification.Dispatch(ctx, s.notifier, notification.EventCycleClosed, map[string]any{
		"cycle_id":              cycle.ID,
		"cycle_name":            cycle.Name,
		"expected_forecasts":    summary.ExpectedForecasts,
		"submitted_forecasts":   summary.SubmittedForecasts,
		"completion_percentage": summary.CompletionPercentage,
	})

	logrus.WithFields(logrus.Fields{
		"cycle_id":   cycle.ID,
		"completion": summary.CompletionPercentage,
	}).Info("Ciclo de planejamento fechado")

	return summary, nil
}

func (s *Service) buildCloseSummary(ctx context.Context, cycle *domain.Cycle) (*domain.CycleCloseSummary, error) {
	expected, err := s.matrixRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar combinações esperadas: %w", err)
	}

	submitted, err := s.forecastRepo.CountByCycleAndStatus(ctx, cycle.ID,
		domain.ForecastStatusSubmitted, domain.ForecastStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar previsões submetidas: %w", err)
	}

	completion := 0.0
	if expected > 0 {
		completion = float64(submitted) / float64(expected) * 100
	}

	return &domain.CycleCloseSummary{
		Cycle:                cycle,
		ExpectedForecasts:    expected,
		SubmittedForecasts:   submitted,
		CompletionPercentage: completion,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, cycleID string) (*domain.Cycle, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar ciclo")
	}
	if cycle == nil {
		return nil, NewCycleIDError(ErrCycleNotFound, apiErrors.ErrCycleNotFound, cycleID, "")
	}

	return cycle, nil
}

// GetCurrent retorna o ciclo aberto e seu período de 16 meses. Sem ciclo
// aberto, retorna (nil, nil, nil): ausência não é erro para o chamador.
func (s *Service) GetCurrent(ctx context.Context) (*domain.Cycle, *domain.PlanningPeriod, error) {
	cycle, err := s.cycleRepo.GetOpen(ctx)
	if err != nil {
		return nil, nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao consultar ciclo aberto")
	}
	if cycle == nil {
		return nil, nil, nil
	}

	period := planning.CalculatePeriod(cycle.StartDate)
	return cycle, &period, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Cycle, error) {
	cycles, err := s.cycleRepo.List(ctx)
	if err != nil {
		return nil, NewCycleError(err, apiErrors.ErrDatabaseOperation, "erro ao listar ciclos")
	}

	return cycles, nil
}
