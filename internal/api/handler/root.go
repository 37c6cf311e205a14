package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ServiceDescriptor responde a raiz da API com o resumo do serviço e suas rotas
func ServiceDescriptor() http.HandlerFunc {
	descriptor := map[string]any{
		"service": "promo-impact-api",
		"endpoints": map[string]string{
			"POST /v1/predict/promotion":   "Prediz o impacto de uma promoção para um produto",
			"POST /v1/predict/bulk":        "Prediz o impacto da mesma promoção para vários produtos",
			"GET /v1/predictions":          "Lista as últimas predições atendidas",
			"GET /v1/models":               "Lista os artefatos de modelo persistidos",
			"POST /v1/models/:id/activate": "Promove um artefato persistido a modelo ativo",
			"GET /v1/features/importance":  "Relatório de importância das features do modelo ativo",
			"POST /v1/cron/:type/run":      "Dispara manualmente uma cron job",
			"GET /v1/cron/status":          "Status das cron jobs",
			"GET /healthcheck":             "Liveness",
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(descriptor); err != nil {
			logrus.Error("Erro ao enviar o descritor do serviço:", err)
		}
	}
}
