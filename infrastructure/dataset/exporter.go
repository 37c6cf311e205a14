package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

// ExportProcessed grava a tabela de features em CSV para inspeção externa.
// O arquivo é apenas um espelho de depuração: o contrato canônico continua
// sendo o slice de FeatureRow em memória.
func ExportProcessed(rows []domain.FeatureRow, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "erro ao criar diretório de saída")
	}

	f, err := os.Create(filepath.Join(outDir, "processed_data.csv"))
	if err != nil {
		return errors.Wrap(err, "erro ao criar processed_data.csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"product_name", "date", "product_category", "base_price", "discount_percentage",
		"promo_type", "is_promo", "avg_monthly_sales", "sales_volatility",
		"seasonality_index", "competitor_intensity", "margin_percentage", "quantity_sold",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		isPromo := "0"
		if r.IsPromo {
			isPromo = "1"
		}

		record := []string{
			r.ProductName,
			r.Date.Format(time.DateOnly),
			r.ProductCategory,
			formatFloat(r.BasePrice),
			formatFloat(r.DiscountPercentage),
			r.PromoType,
			isPromo,
			formatFloat(r.AvgMonthlySales),
			formatFloat(r.SalesVolatility),
			formatFloat(r.SeasonalityIndex),
			formatFloat(r.CompetitorIntensity),
			formatFloat(r.MarginPercentage),
			formatFloat(r.QuantitySold),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
