package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/cycling"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/middleware"
)

// CurrentCycleResponse devolve o ciclo aberto com o período de 16 meses
type CurrentCycleResponse struct {
	Cycle  *domain.Cycle          `json:"cycle"`
	Period *domain.PlanningPeriod `json:"period,omitempty"`
}

// CreateCycle cria um novo ciclo de planejamento em DRAFT
func CreateCycle(service cycling.CycleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCycle")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCycleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		cycle, err := service.Create(r.Context(), &req, userClaims.UserID)
		if err != nil {
			handleCycleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(cycle); err != nil {
			logrus.Error(err)
		}
	}
}

// OpenCycle abre o ciclo para lançamento de previsões
func OpenCycle(service cycling.CycleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - OpenCycle")

		cycleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cycleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do ciclo não fornecido", nil)
			return
		}

		cycle, err := service.Open(r.Context(), cycleID)
		if err != nil {
			handleCycleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cycle); err != nil {
			logrus.Error(err)
		}
	}
}

// CloseCycle fecha o ciclo e devolve o resumo de completude
func CloseCycle(service cycling.CycleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CloseCycle")

		cycleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cycleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do ciclo não fornecido", nil)
			return
		}

		summary, err := service.Close(r.Context(), cycleID)
		if err != nil {
			handleCycleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error(err)
		}
	}
}

// GetCycle retorna um ciclo por ID
func GetCycle(service cycling.CycleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cycleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do ciclo não fornecido", nil)
			return
		}

		cycle, err := service.GetByID(r.Context(), cycleID)
		if err != nil {
			handleCycleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cycle); err != nil {
			logrus.Error(err)
		}
	}
}

// GetCurrentCycle retorna o ciclo aberto e seu período de planejamento.
// Sem ciclo aberto, devolve 204: ausência não é erro.
func GetCurrentCycle(service cycling.CycleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycle, period, err := service.GetCurrent(r.Context())
		if err != nil {
			handleCycleError(w, err)
			return
		}

		if cycle == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(CurrentCycleResponse{Cycle: cycle, Period: period}); err != nil {
			logrus.Error(err)
		}
	}
}

// ListCycles lista todos os ciclos, do mais recente para o mais antigo
func ListCycles(service cycling.CycleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycles, err := service.List(r.Context())
		if err != nil {
			handleCycleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cycles); err != nil {
			logrus.Error(err)
		}
	}
}

// handleCycleError converte o erro do usecase na resposta padronizada
func handleCycleError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var cycleErr *cycling.CycleError
	if errors.As(err, &cycleErr) {
		details := map[string]any{}
		if cycleErr.CycleID != "" {
			details["cycle_id"] = cycleErr.CycleID
		}
		apiErrors.WriteError(w, cycleErr.Code, cycleErr.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar ciclo", nil)
}
