package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/forecasting"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/middleware"
)

// RejectForecastRequest carrega o motivo da rejeição
type RejectForecastRequest struct {
	Reason string `json:"reason"`
}

// BulkForecastRequest é o lote de previsões de um cliente
type BulkForecastRequest struct {
	Forecasts []*domain.ForecastPayload `json:"forecasts"`
}

// UpsertForecast grava a previsão de um produto para o cliente no ciclo
func UpsertForecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpsertForecast")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		cycleID := params.ByName("id")
		customerID := params.ByName("customer_id")
		if cycleID == "" || customerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Ciclo e cliente são obrigatórios", nil)
			return
		}

		var payload domain.ForecastPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		forecast, err := service.Upsert(r.Context(), cycleID, customerID, userClaims.UserID, &payload)
		if err != nil {
			handleForecastError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(forecast); err != nil {
			logrus.Error(err)
		}
	}
}

// BulkUpsertForecasts grava um lote de previsões do cliente no ciclo
func BulkUpsertForecasts(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - BulkUpsertForecasts")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		cycleID := params.ByName("id")
		customerID := params.ByName("customer_id")
		if cycleID == "" || customerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Ciclo e cliente são obrigatórios", nil)
			return
		}

		var req BulkForecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		result, err := service.BulkUpsert(r.Context(), cycleID, customerID, userClaims.UserID, req.Forecasts)
		if err != nil {
			handleForecastError(w, err)
			return
		}

		// 207: itens do lote podem ter resultados mistos
		w.Header().Set("Content-Type", "application/json")
		if result.Failed > 0 {
			w.WriteHeader(http.StatusMultiStatus)
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

// SubmitForecast submete a previsão para revisão
func SubmitForecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SubmitForecast")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		forecastID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if forecastID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da previsão não fornecido", nil)
			return
		}

		forecast, err := service.Submit(r.Context(), forecastID, userClaims.UserID)
		if err != nil {
			handleForecastError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(forecast); err != nil {
			logrus.Error(err)
		}
	}
}

// ApproveForecast aprova uma previsão submetida
func ApproveForecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ApproveForecast")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		forecastID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if forecastID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da previsão não fornecido", nil)
			return
		}

		forecast, err := service.Approve(r.Context(), forecastID, userClaims.UserID)
		if err != nil {
			handleForecastError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(forecast); err != nil {
			logrus.Error(err)
		}
	}
}

// RejectForecast rejeita uma previsão submetida, devolvendo-a ao vendedor
func RejectForecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RejectForecast")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		forecastID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if forecastID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da previsão não fornecido", nil)
			return
		}

		var req RejectForecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		forecast, err := service.Reject(r.Context(), forecastID, userClaims.UserID, req.Reason)
		if err != nil {
			handleForecastError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(forecast); err != nil {
			logrus.Error(err)
		}
	}
}

// ListCycleForecasts lista as previsões de um ciclo. Vendedores enxergam só
// as próprias; administradores e supervisores enxergam todas.
func ListCycleForecasts(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cycleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cycleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do ciclo não fornecido", nil)
			return
		}

		var forecasts []*domain.Forecast
		var err error

		if userClaims.UserRoleID == domain.RoleSalesRep {
			forecasts, err = service.ListByCycleAndRep(r.Context(), cycleID, userClaims.UserID)
		} else {
			forecasts, err = service.ListByCycle(r.Context(), cycleID)
		}
		if err != nil {
			handleForecastError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(forecasts); err != nil {
			logrus.Error(err)
		}
	}
}

// handleForecastError converte o erro do usecase na resposta padronizada
func handleForecastError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var forecastErr *forecasting.ForecastError
	if errors.As(err, &forecastErr) {
		details := map[string]any{}
		if forecastErr.ForecastID != "" {
			details["forecast_id"] = forecastErr.ForecastID
		}
		apiErrors.WriteError(w, forecastErr.Code, forecastErr.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar previsão", nil)
}
