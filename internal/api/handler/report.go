package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/infrastructure/rendering"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
)

// GenerateReport gera o relatório de vendas e devolve no formato pedido
// (JSON por padrão, CSV como download)
func GenerateReport(service reporting.Reporter, renderer rendering.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateReport")

		var req domain.ReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		report, err := service.Generate(r.Context(), &req)
		if err != nil {
			handleReportError(w, err)
			return
		}

		data, contentType, err := renderer.Render(report, req.Format)
		if err != nil {
			if errors.Is(err, rendering.ErrUnsupportedFormat) {
				apiErrors.WriteError(w, apiErrors.ErrReportInvalid, err.Error(), nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar relatório", nil)
			return
		}

		w.Header().Set("Content-Type", contentType)
		if req.Format == domain.ReportFormatCSV {
			filename := fmt.Sprintf("relatorio-vendas-%s.csv", report.GeneratedAt.Format("20060102-150405"))
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		}

		if _, err := w.Write(data); err != nil {
			logrus.Error(err)
		}
	}
}

// handleReportError converte o erro do usecase na resposta padronizada
func handleReportError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao gerar relatório", nil)
}
