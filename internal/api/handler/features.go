package handler

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
	"github.com/vfg2006/promo-impact-api/pkg/apiErrors"
)

// FeatureImportanceResponse é o relatório de importâncias do modelo ativo.
// Expanded traz as colunas como o modelo enxerga (one-hot incluso); Grouped
// reagrega cada bloco one-hot na coluna categórica de origem.
type FeatureImportanceResponse struct {
	ModelID  string                   `json:"model_id"`
	Expanded []modeling.FeatureWeight `json:"expanded"`
	Grouped  []modeling.FeatureWeight `json:"grouped"`
}

// GetFeatureImportance retorna as importâncias de features do modelo ativo
func GetFeatureImportance(models *predicting.ModelContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, err := models.Current()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrModelNotReady, "Nenhum modelo treinado disponível", nil)
			return
		}

		response := FeatureImportanceResponse{
			ModelID:  models.CurrentID(),
			Expanded: artifact.FeatureImportance,
			Grouped:  groupImportances(artifact.FeatureImportance, artifact.CategoricalFeatures),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error("Erro ao enviar resposta de importância de features:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// groupImportances soma as importâncias dos blocos one-hot de volta na coluna
// categórica de origem, mantendo as numéricas como estão
func groupImportances(expanded []modeling.FeatureWeight, categorical []string) []modeling.FeatureWeight {
	totals := make(map[string]float64, len(expanded))
	for _, weight := range expanded {
		totals[baseColumn(weight.Feature, categorical)] += weight.Importance
	}

	out := make([]modeling.FeatureWeight, 0, len(totals))
	for feature, importance := range totals {
		out = append(out, modeling.FeatureWeight{
			Feature:    feature,
			Importance: importance,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Importance != out[b].Importance {
			return out[a].Importance > out[b].Importance
		}
		return out[a].Feature < out[b].Feature
	})

	return out
}

func baseColumn(expanded string, categorical []string) string {
	for _, column := range categorical {
		if strings.HasPrefix(expanded, column+"_") {
			return column
		}
	}
	return expanded
}
