package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/aggregating"
	"github.com/vfg2006/sop-manager-api/internal/usecases/importing"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
)

// ImportSalesHistory importa um lote de registros do histórico de vendas
func ImportSalesHistory(service importing.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ImportSalesHistory")

		var records []*domain.SalesHistoryRecord
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		result, err := service.ImportBatch(r.Context(), records)
		if err != nil {
			var importErr *importing.ImportError
			if errors.As(err, &importErr) {
				apiErrors.WriteError(w, importErr.Code, importErr.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao importar histórico de vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if result.Rejected > 0 {
			w.WriteHeader(http.StatusMultiStatus)
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

// GetSalesHistory consulta o histórico de vendas com filtros de querystring
func GetSalesHistory(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := salesHistoryFilterFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		records, err := service.Records(r.Context(), filter)
		if err != nil {
			handleAggregationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			logrus.Error(err)
		}
	}
}

// GetSalesSummary devolve as estatísticas agregadas do histórico
func GetSalesSummary(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := salesHistoryFilterFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.Summary(r.Context(), filter)
		if err != nil {
			handleAggregationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error(err)
		}
	}
}

// salesHistoryFilterFromQuery monta o filtro a partir da querystring
func salesHistoryFilterFromQuery(r *http.Request) (*domain.SalesHistoryFilter, error) {
	query := r.URL.Query()
	filter := &domain.SalesHistoryFilter{}

	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("parâmetro year inválido")
		}
		filter.Year = &year
	}

	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return nil, errors.New("parâmetro month inválido")
		}
		filter.Month = &month
	}

	if v := query.Get("start_date"); v != "" {
		start, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, errors.New("parâmetro start_date inválido, use yyyy-mm-dd")
		}
		filter.StartDate = &start
	}

	if v := query.Get("end_date"); v != "" {
		end, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, errors.New("parâmetro end_date inválido, use yyyy-mm-dd")
		}
		filter.EndDate = &end
	}

	filter.CustomerID = query.Get("customer_id")
	filter.ProductID = query.Get("product_id")

	return filter, nil
}

// handleAggregationError converte o erro do usecase na resposta padronizada
func handleAggregationError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var aggErr *aggregating.AggregationError
	if errors.As(err, &aggErr) {
		apiErrors.WriteError(w, aggErr.Code, aggErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao consultar histórico de vendas", nil)
}
