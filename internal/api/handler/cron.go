package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/scheduler"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sop-manager-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeErpSales = "erp-sales"
	CronJobTypeReminder = "submission-reminder"
	CronJobTypeAll      = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ErpSalesSyncService       *scheduler.ErpSalesSyncService
	SubmissionReminderService *scheduler.SubmissionReminderService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeErpSales:
			// Executar sincronização de vendas do ERP
			if services.ErpSalesSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do ERP não disponível", nil)
				return
			}
			services.ErpSalesSyncService.TriggerManualSync()

		case CronJobTypeReminder:
			// Executar verificação de lembretes de submissão
			if services.SubmissionReminderService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de lembretes de submissão não disponível", nil)
				return
			}
			services.SubmissionReminderService.TriggerManualRun()

		case CronJobTypeAll:
			// Executar todas as rotinas
			if services.ErpSalesSyncService != nil {
				services.ErpSalesSyncService.TriggerManualSync()
			}
			if services.SubmissionReminderService != nil {
				services.SubmissionReminderService.TriggerManualRun()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: erp-sales, submission-reminder, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"erp-sales":           services.ErpSalesSyncService.GetStatus(),
			"submission-reminder": services.SubmissionReminderService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
