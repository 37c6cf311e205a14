package handler

import (
	"net/http"

	"github.com/vfg2006/promo-impact-api/infrastructure/modelstore"
	"github.com/vfg2006/promo-impact-api/infrastructure/repository"
	"github.com/vfg2006/promo-impact-api/internal/api/handler/router"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: ServiceDescriptor(),
		},
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Predictions(service predicting.Predictor, models *predicting.ModelContext, auditRepo repository.PredictionLogRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/predict/promotion",
			Method:  http.MethodPost,
			Handler: PredictPromotionImpact(service, models, auditRepo),
		},
		{
			Path:    "/v1/predict/bulk",
			Method:  http.MethodPost,
			Handler: PredictBulk(service, models, auditRepo),
		},
		{
			Path:    "/v1/predictions",
			Method:  http.MethodGet,
			Handler: ListPredictionLogs(auditRepo),
		},
	}
}

func Models(store modelstore.Store, models *predicting.ModelContext) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/models",
			Method:  http.MethodGet,
			Handler: ListModels(store, models),
		},
		{
			Path:    "/v1/models/:id/activate",
			Method:  http.MethodPost,
			Handler: ActivateModel(store, models),
		},
		{
			Path:    "/v1/features/importance",
			Method:  http.MethodGet,
			Handler: GetFeatureImportance(models),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
