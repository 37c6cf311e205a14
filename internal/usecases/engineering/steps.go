package engineering

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/promo-impact-api/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// cleanSales tipifica as vendas brutas: quantidade/receita ausentes viram 0,
// quantidades negativas são descartadas (erro de dado, não clampeado) e os
// campos de calendário e o preço unitário são derivados.
func cleanSales(sales []domain.SalesRecord) []domain.FeatureRow {
	rows := make([]domain.FeatureRow, 0, len(sales))

	for _, sale := range sales {
		quantity := 0.0
		if sale.QuantitySold != nil {
			quantity = *sale.QuantitySold
		}

		if quantity < 0 {
			continue
		}

		revenue := 0.0
		if sale.Revenue != nil {
			revenue = *sale.Revenue
		}

		unitPrice := 0.0
		if quantity > 0 {
			unitPrice = revenue / quantity
		}

		// dia da semana com segunda=0 ... domingo=6
		dayOfWeek := (int(sale.Date.Weekday()) + 6) % 7

		rows = append(rows, domain.FeatureRow{
			ProductName:  sale.ProductName,
			Date:         sale.Date,
			Year:         sale.Date.Year(),
			Month:        int(sale.Date.Month()),
			Day:          sale.Date.Day(),
			DayOfWeek:    dayOfWeek,
			IsWeekend:    dayOfWeek >= 5,
			UnitPrice:    unitPrice,
			QuantitySold: quantity,
		})
	}

	return rows
}

// markPromotions marca como promovida toda linha de venda do mesmo produto cuja
// data cai dentro de [promo_start_date, promo_end_date] inclusive, carimbando
// promo_type e discount_percentage. Promoções com início depois do fim são
// rejeitadas com erro de validação, nunca aplicadas silenciosamente.
func markPromotions(rows []domain.FeatureRow, promos []domain.PromotionRecord, policy string) ([]domain.FeatureRow, error) {
	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	for _, promo := range promos {
		if promo.PromoStartDate.After(promo.PromoEndDate) {
			return nil, &InvalidPromotionError{
				ProductName: promo.ProductName,
				StartDate:   promo.PromoStartDate,
				EndDate:     promo.PromoEndDate,
			}
		}

		discount := 0.0
		if promo.DiscountPercentage != nil {
			discount = *promo.DiscountPercentage
		}
		discount = math.Min(math.Max(discount, 0), 100)

		for i := range out {
			if out[i].ProductName != promo.ProductName {
				continue
			}
			if out[i].Date.Before(promo.PromoStartDate) || out[i].Date.After(promo.PromoEndDate) {
				continue
			}

			if policy == PolicyHighestDiscount && out[i].IsPromo && out[i].DiscountPercentage >= discount {
				continue
			}

			out[i].IsPromo = true
			out[i].PromoType = promo.PromoType
			out[i].DiscountPercentage = discount
		}
	}

	return out, nil
}

// enrichProducts faz left join dos atributos do catálogo pelo nome do produto.
// Produto fora do catálogo recebe categoria "Unknown" e preço/margem zero.
func enrichProducts(rows []domain.FeatureRow, catalog []domain.ProductCatalogEntry) []domain.FeatureRow {
	byName := make(map[string]domain.ProductCatalogEntry, len(catalog))
	for _, entry := range catalog {
		byName[entry.ProductName] = entry
	}

	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	for i := range out {
		entry, ok := byName[out[i].ProductName]
		if !ok {
			out[i].ProductCategory = "Unknown"
			continue
		}

		out[i].ProductCategory = entry.Category
		out[i].BasePrice = entry.BasePrice
		out[i].MarginPercentage = entry.MarginPercentage
	}

	return out
}

// addSeasonality calcula, por produto, a razão entre a quantidade do dia e a
// média móvel da série diária. A série é alinhada ao eixo de datas de todo o
// dataset com lacunas preenchidas com zero, e divisões degeneradas (média zero)
// resultam no índice neutro 1.0.
func addSeasonality(rows []domain.FeatureRow, window int) []domain.FeatureRow {
	axis := dateAxis(rows)
	daily := dailyTotals(rows)

	index := make(map[string]map[time.Time]float64)
	for product, byDate := range daily {
		series := make([]float64, len(axis))
		for i, date := range axis {
			series[i] = byDate[date]
		}

		values := make(map[time.Time]float64, len(axis))
		for i, date := range axis {
			lo := i - window + 1
			if lo < 0 {
				lo = 0
			}

			mean := stat.Mean(series[lo:i+1], nil)
			seasonality := 1.0
			if mean > 0 {
				seasonality = series[i] / mean
			}
			if math.IsNaN(seasonality) || math.IsInf(seasonality, 0) {
				seasonality = 1.0
			}

			values[date] = seasonality
		}

		index[product] = values
	}

	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	for i := range out {
		out[i].SeasonalityIndex = 1.0
		if values, ok := index[out[i].ProductName]; ok {
			if v, ok := values[out[i].Date]; ok {
				out[i].SeasonalityIndex = v
			}
		}
	}

	return out
}

// addVolatility calcula o desvio padrão móvel (amostral) da quantidade diária
// por produto sobre as datas observadas. Histórico insuficiente resulta em 0.
func addVolatility(rows []domain.FeatureRow, window int) []domain.FeatureRow {
	daily := dailyTotals(rows)

	volatility := make(map[string]map[time.Time]float64)
	for product, byDate := range daily {
		dates := make([]time.Time, 0, len(byDate))
		for date := range byDate {
			dates = append(dates, date)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		series := make([]float64, len(dates))
		for i, date := range dates {
			series[i] = byDate[date]
		}

		values := make(map[time.Time]float64, len(dates))
		for i, date := range dates {
			lo := i - window + 1
			if lo < 0 {
				lo = 0
			}

			v := 0.0
			if i-lo+1 >= 2 {
				v = stat.StdDev(series[lo:i+1], nil)
			}
			if math.IsNaN(v) {
				v = 0
			}

			values[date] = v
		}

		volatility[product] = values
	}

	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	for i := range out {
		out[i].SalesVolatility = 0
		if values, ok := volatility[out[i].ProductName]; ok {
			if v, ok := values[out[i].Date]; ok {
				out[i].SalesVolatility = v
			}
		}
	}

	return out
}

// addCompetitorIntensity deriva a pressão promocional da categoria: a fração de
// linhas promovidas em cada par (data, categoria), reescalada min-max para [0,1]
// sobre o dataset inteiro.
func addCompetitorIntensity(rows []domain.FeatureRow) []domain.FeatureRow {
	type groupKey struct {
		date     time.Time
		category string
	}

	promoted := make(map[groupKey]float64)
	total := make(map[groupKey]float64)
	for _, row := range rows {
		key := groupKey{date: row.Date, category: row.ProductCategory}
		total[key]++
		if row.IsPromo {
			promoted[key]++
		}
	}

	raw := make([]float64, len(rows))
	for i, row := range rows {
		key := groupKey{date: row.Date, category: row.ProductCategory}
		raw[i] = promoted[key] / total[key]
	}

	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	if len(raw) == 0 {
		return out
	}

	min := floats.Min(raw)
	max := floats.Max(raw)
	for i := range out {
		if max > min {
			out[i].CompetitorIntensity = (raw[i] - min) / (max - min)
		} else {
			out[i].CompetitorIntensity = 0
		}
	}

	return out
}

// addAvgMonthlySales calcula a média de quantidade vendida por
// (produto, ano, mês) e propaga o valor para todas as linhas do mês.
func addAvgMonthlySales(rows []domain.FeatureRow) []domain.FeatureRow {
	type monthKey struct {
		product string
		year    int
		month   int
	}

	sum := make(map[monthKey]float64)
	count := make(map[monthKey]float64)
	for _, row := range rows {
		key := monthKey{product: row.ProductName, year: row.Year, month: row.Month}
		sum[key] += row.QuantitySold
		count[key]++
	}

	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	for i := range out {
		key := monthKey{product: out[i].ProductName, year: out[i].Year, month: out[i].Month}
		out[i].AvgMonthlySales = sum[key] / count[key]
	}

	return out
}

// selectAndFill aplica o preenchimento final do contrato de schema: numérico
// ausente ou não finito vira 0, categórico ausente vira "Unknown".
func selectAndFill(rows []domain.FeatureRow) []domain.FeatureRow {
	out := make([]domain.FeatureRow, len(rows))
	copy(out, rows)

	for i := range out {
		out[i].BasePrice = finiteOrZero(out[i].BasePrice)
		out[i].DiscountPercentage = finiteOrZero(out[i].DiscountPercentage)
		out[i].AvgMonthlySales = finiteOrZero(out[i].AvgMonthlySales)
		out[i].SalesVolatility = finiteOrZero(out[i].SalesVolatility)
		out[i].SeasonalityIndex = finiteOrZero(out[i].SeasonalityIndex)
		out[i].CompetitorIntensity = finiteOrZero(out[i].CompetitorIntensity)
		out[i].MarginPercentage = finiteOrZero(out[i].MarginPercentage)
		out[i].UnitPrice = finiteOrZero(out[i].UnitPrice)

		if out[i].ProductCategory == "" {
			out[i].ProductCategory = "Unknown"
		}
		if out[i].PromoType == "" {
			out[i].PromoType = "Unknown"
		}
		if out[i].Region == "" {
			out[i].Region = "Unknown"
		}
		if out[i].Channel == "" {
			out[i].Channel = "Unknown"
		}
	}

	return out
}

// dateAxis retorna as datas distintas do dataset em ordem crescente
func dateAxis(rows []domain.FeatureRow) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, row := range rows {
		seen[row.Date] = struct{}{}
	}

	axis := make([]time.Time, 0, len(seen))
	for date := range seen {
		axis = append(axis, date)
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })

	return axis
}

// dailyTotals agrega a quantidade vendida por produto e data
func dailyTotals(rows []domain.FeatureRow) map[string]map[time.Time]float64 {
	daily := make(map[string]map[time.Time]float64)
	for _, row := range rows {
		if daily[row.ProductName] == nil {
			daily[row.ProductName] = make(map[time.Time]float64)
		}
		daily[row.ProductName][row.Date] += row.QuantitySold
	}

	return daily
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
