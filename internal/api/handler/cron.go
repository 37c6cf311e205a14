package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/scheduler"
	"github.com/vfg2006/promo-impact-api/pkg/apiErrors"
	"github.com/vfg2006/promo-impact-api/pkg/utils"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRetrain = "retrain"
	CronJobTypeAll     = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	RetrainService *scheduler.RetrainService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeRetrain, CronJobTypeAll:
			if services.RetrainService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de retreinamento não disponível", nil)
				return
			}
			services.RetrainService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: retrain, all", nil)
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

		status := map[string]any{
			"retrain": services.RetrainService.GetStatus(),
		}

		logrus.Debug("Status das cron jobs: ", utils.PrettyJson(status))

		json.NewEncoder(w).Encode(status)
	}
}
