package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/infrastructure/repository"
	"github.com/vfg2006/promo-impact-api/internal/domain"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
	"github.com/vfg2006/promo-impact-api/pkg/apiErrors"
	"github.com/vfg2006/promo-impact-api/pkg/log"
	"github.com/vfg2006/promo-impact-api/pkg/utils"
)

// PredictPromotionImpact prediz o impacto de uma promoção para um produto
func PredictPromotionImpact(service predicting.Predictor, models *predicting.ModelContext, auditRepo repository.PredictionLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.PromotionImpactRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if message, ok := validateImpactRequest(request.Product, request.Promotion); !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, message, nil)
			return
		}

		response, err := service.PredictPromotionImpact(request)
		if err != nil {
			writePredictionError(w, err)
			return
		}
		roundImpactResult(&response.PromotionImpactResult)

		auditPrediction(r, models, auditRepo, request, response)

		// Enviar resposta
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error("Erro ao enviar resposta da predição:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// PredictBulk prediz o impacto da mesma promoção para uma lista de produtos
func PredictBulk(service predicting.Predictor, models *predicting.ModelContext, auditRepo repository.PredictionLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.BulkPromotionImpactRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(request.Products) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum produto informado", nil)
			return
		}

		for _, product := range request.Products {
			if message, ok := validateImpactRequest(product, request.Promotion); !ok {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, message, nil)
				return
			}
		}

		responses, err := service.PredictBulk(request)
		if err != nil {
			writePredictionError(w, err)
			return
		}

		for i := range responses {
			roundImpactResult(&responses[i].PromotionImpactResult)
			auditPrediction(r, models, auditRepo, domain.PromotionImpactRequest{
				Product:   request.Products[i],
				Promotion: request.Promotion,
			}, &responses[i])
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			logrus.Error("Erro ao enviar resposta da predição em lote:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ListPredictionLogs retorna as últimas predições atendidas
func ListPredictionLogs(auditRepo repository.PredictionLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auditRepo == nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Trilha de auditoria desabilitada", nil)
			return
		}

		logs, err := auditRepo.ListRecent(50)
		if err != nil {
			logrus.Error("Erro ao buscar logs de predição:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar logs de predição", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(logs); err != nil {
			logrus.Error("Erro ao enviar resposta dos logs de predição:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

func validateImpactRequest(product domain.ProductData, promo domain.PromotionDetails) (string, bool) {
	if product.ProductName == "" {
		return "product_name é obrigatório", false
	}
	if product.BasePrice <= 0 {
		return "base_price deve ser maior que zero", false
	}
	if product.AvgMonthlySales < 0 {
		return "avg_monthly_sales não pode ser negativo", false
	}
	if promo.DiscountPercentage < 0 || promo.DiscountPercentage > 100 {
		return "discount_percentage deve estar entre 0 e 100", false
	}
	if promo.PromoCost < 0 {
		return "promo_cost não pode ser negativo", false
	}

	if promo.PromoStartDate != nil && promo.PromoEndDate != nil {
		start, err := utils.ParseDate(*promo.PromoStartDate)
		if err != nil {
			return "promo_start_date em formato inválido, use YYYY-MM-DD", false
		}
		end, err := utils.ParseDate(*promo.PromoEndDate)
		if err != nil {
			return "promo_end_date em formato inválido, use YYYY-MM-DD", false
		}
		if start.After(*end) {
			return "promo_start_date não pode ser posterior a promo_end_date", false
		}
	}

	return "", true
}

// roundImpactResult arredonda os valores monetários e percentuais para duas
// casas na borda da API; o resultado do motor de predição segue sem arredondar
func roundImpactResult(result *domain.PromotionImpactResult) {
	result.PredictedSales = utils.RoundWithTwoDecimalPlace(result.PredictedSales)
	result.SalesLift = utils.RoundWithTwoDecimalPlace(result.SalesLift)
	result.SalesLiftPercentage = utils.RoundWithTwoDecimalPlace(result.SalesLiftPercentage)
	result.IncrementalMargin = utils.RoundWithTwoDecimalPlace(result.IncrementalMargin)
	result.ROI = utils.RoundWithTwoDecimalPlace(result.ROI)
}

func writePredictionError(w http.ResponseWriter, err error) {
	if errors.Is(err, predicting.ErrModelNotReady) {
		apiErrors.WriteError(w, apiErrors.ErrModelNotReady, "Nenhum modelo treinado disponível", nil)
		return
	}

	logrus.Error("Erro ao predizer impacto de promoção:", err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao predizer impacto de promoção", nil)
}

// auditPrediction grava a predição na trilha de auditoria, sem bloquear a
// resposta nem falhar a requisição quando o banco está indisponível
func auditPrediction(
	r *http.Request,
	models *predicting.ModelContext,
	auditRepo repository.PredictionLogRepository,
	request domain.PromotionImpactRequest,
	response *domain.PromotionImpactResponse,
) {
	if auditRepo == nil {
		return
	}

	entry := &repository.PredictionLog{
		CorrelationID:      log.GetCorrelationID(r.Context()),
		ProductName:        response.ProductName,
		ModelID:            models.CurrentID(),
		PromoType:          request.Promotion.PromoType,
		DiscountPercentage: request.Promotion.DiscountPercentage,
		BaselineSales:      response.BaselineSales,
		PredictedSales:     response.PredictedSales,
		SalesLift:          response.SalesLift,
		ROI:                response.ROI,
		Confidence:         response.Confidence,
		CreatedAt:          response.Timestamp,
	}

	go func() {
		if err := auditRepo.Save(entry); err != nil {
			logrus.WithError(err).Warn("Erro ao gravar a predição na trilha de auditoria")
		}
	}()
}
