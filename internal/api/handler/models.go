package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/infrastructure/modelstore"
	"github.com/vfg2006/promo-impact-api/internal/domain"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
	"github.com/vfg2006/promo-impact-api/pkg/apiErrors"
)

// ListModels retorna o catálogo de artefatos persistidos, marcando o ativo
func ListModels(store modelstore.Store, models *predicting.ModelContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := store.List()
		if err != nil {
			logrus.Error("Erro ao listar artefatos de modelos:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar modelos", nil)
			return
		}

		activeID := models.CurrentID()

		out := make([]domain.ModelInfo, 0, len(catalog))
		for _, metadata := range catalog {
			out = append(out, domain.ModelInfo{
				ModelID:      metadata.ModelID,
				ModelType:    metadata.ModelType,
				TrainingDate: metadata.TrainingDate,
				Metrics:      metadata.Metrics,
				Features:     metadata.Features,
				IsActive:     metadata.ModelID == activeID,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			logrus.Error("Erro ao enviar resposta do catálogo de modelos:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ActivateModel carrega um artefato específico do disco e o promove a ativo
func ActivateModel(store modelstore.Store, models *predicting.ModelContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modelID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if modelID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do modelo não especificado", nil)
			return
		}

		artifact, err := store.Load(modelID)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		models.Swap(artifact, modelID)

		logrus.WithField("model_id", modelID).Info("Modelo promovido a ativo")

		response := map[string]any{
			"message":  "Modelo ativado com sucesso",
			"model_id": modelID,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modelstore.ErrArtifactNotFound):
		apiErrors.WriteError(w, apiErrors.ErrModelNotFound, "Artefato de modelo não encontrado", nil)
	case errors.Is(err, modelstore.ErrArtifactCorrupt):
		apiErrors.WriteError(w, apiErrors.ErrModelCorrupt, "Artefato de modelo corrompido", nil)
	default:
		logrus.Error("Erro ao carregar artefato de modelo:", err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao carregar modelo", nil)
	}
}
