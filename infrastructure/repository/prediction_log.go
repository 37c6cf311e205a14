package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/infrastructure/database/postgres"
	"github.com/vfg2006/promo-impact-api/pkg/utils"
)

const predictionLogsTable = "prediction_logs"

// PredictionLog é uma linha da trilha de auditoria de predições
type PredictionLog struct {
	ID                 string    `json:"id"`
	CorrelationID      string    `json:"correlation_id"`
	ProductName        string    `json:"product_name"`
	ModelID            string    `json:"model_id"`
	PromoType          string    `json:"promo_type"`
	DiscountPercentage float64   `json:"discount_percentage"`
	BaselineSales      float64   `json:"baseline_sales"`
	PredictedSales     float64   `json:"predicted_sales"`
	SalesLift          float64   `json:"sales_lift"`
	ROI                float64   `json:"roi"`
	Confidence         float64   `json:"confidence"`
	CreatedAt          time.Time `json:"created_at"`
}

type PredictionLogRepository interface {
	Save(log *PredictionLog) error
	ListRecent(limit uint64) ([]*PredictionLog, error)
}

// dbConn é o recorte de *postgres.Connection que este repositório usa
type dbConn interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
}

type predictionLogRepository struct {
	conn dbConn
}

func NewPredictionLogRepository(conn *postgres.Connection) PredictionLogRepository {
	return &predictionLogRepository{
		conn: conn,
	}
}

// Save registra a predição atendida. O ID é gerado aqui quando ausente.
func (r *predictionLogRepository) Save(log *PredictionLog) error {
	if log.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return err
		}
		log.ID = id
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	sqlQuery, args, err := squirrel.
		Insert(predictionLogsTable).
		Columns(
			"id", "correlation_id", "product_name", "model_id",
			"promo_type", "discount_percentage",
			"baseline_sales", "predicted_sales", "sales_lift",
			"roi", "confidence", "created_at",
		).
		Values(
			log.ID, log.CorrelationID, log.ProductName, log.ModelID,
			log.PromoType, log.DiscountPercentage,
			log.BaselineSales, log.PredictedSales, log.SalesLift,
			log.ROI, log.Confidence, log.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err = r.conn.Exec(sqlQuery, args...); err != nil {
		logrus.WithError(err).Error("Erro ao gravar o log de predição")
		return err
	}

	return nil
}

// ListRecent retorna as últimas predições atendidas, mais recente primeiro
func (r *predictionLogRepository) ListRecent(limit uint64) ([]*PredictionLog, error) {
	sqlQuery, args, err := squirrel.
		Select(
			"id", "correlation_id", "product_name", "model_id",
			"promo_type", "discount_percentage",
			"baseline_sales", "predicted_sales", "sales_lift",
			"roi", "confidence", "created_at",
		).
		From(predictionLogsTable).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*PredictionLog, 0, limit)
	for rows.Next() {
		log, err := r.deserializeLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, log)
	}

	return out, rows.Err()
}

func (r *predictionLogRepository) deserializeLog(rows *sql.Rows) (*PredictionLog, error) {
	log := &PredictionLog{}

	if err := rows.Scan(
		&log.ID,
		&log.CorrelationID,
		&log.ProductName,
		&log.ModelID,
		&log.PromoType,
		&log.DiscountPercentage,
		&log.BaselineSales,
		&log.PredictedSales,
		&log.SalesLift,
		&log.ROI,
		&log.Confidence,
		&log.CreatedAt,
	); err != nil {
		return nil, err
	}

	return log, nil
}
