package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Arquivos obrigatórios dentro do diretório de dados
const (
	SalesFile   = "sales_data.csv"
	PromoFile   = "promotional_data.csv"
	CatalogFile = "product_catalog.json"
	ProfileFile = "company_profile.json"
)

const dateLayout = "2006-01-02"

// Loader carrega as quatro fontes brutas em estruturas tipadas.
// Nenhum default é aplicado aqui: célula vazia vira nil e a limpeza
// é responsabilidade da engenharia de features.
type Loader interface {
	Load() (*domain.Dataset, error)
}

type fileLoader struct {
	dataDir string
}

func NewLoader(dataDir string) Loader {
	return &fileLoader{dataDir: dataDir}
}

func (l *fileLoader) Load() (*domain.Dataset, error) {
	sales, err := l.loadSales()
	if err != nil {
		return nil, err
	}

	promos, err := l.loadPromotions()
	if err != nil {
		return nil, err
	}

	catalog, err := l.loadCatalog()
	if err != nil {
		return nil, err
	}

	profile, err := l.loadProfile()
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sales":      len(sales),
		"promotions": len(promos),
		"products":   len(catalog),
	}).Info("Fontes de dados carregadas com sucesso")

	return &domain.Dataset{
		Sales:      sales,
		Promotions: promos,
		Catalog:    catalog,
		Profile:    profile,
	}, nil
}

func (l *fileLoader) loadSales() ([]domain.SalesRecord, error) {
	rows, err := l.readCSV(SalesFile, 4)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.SalesRecord, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(dateLayout, row[1])
		if err != nil {
			return nil, newLoadError(SalesFile, errors.Wrapf(err, "data inválida na linha %d", i+2))
		}

		quantity, err := parseOptionalFloat(row[2])
		if err != nil {
			return nil, newLoadError(SalesFile, errors.Wrapf(err, "quantity_sold inválido na linha %d", i+2))
		}

		revenue, err := parseOptionalFloat(row[3])
		if err != nil {
			return nil, newLoadError(SalesFile, errors.Wrapf(err, "revenue inválido na linha %d", i+2))
		}

		sales = append(sales, domain.SalesRecord{
			ProductName:  row[0],
			Date:         date,
			QuantitySold: quantity,
			Revenue:      revenue,
		})
	}

	return sales, nil
}

func (l *fileLoader) loadPromotions() ([]domain.PromotionRecord, error) {
	rows, err := l.readCSV(PromoFile, 8)
	if err != nil {
		return nil, err
	}

	promos := make([]domain.PromotionRecord, 0, len(rows))
	for i, row := range rows {
		discount, err := parseOptionalFloat(row[2])
		if err != nil {
			return nil, newLoadError(PromoFile, errors.Wrapf(err, "discount_percentage inválido na linha %d", i+2))
		}

		cost, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, newLoadError(PromoFile, errors.Wrapf(err, "promo_cost inválido na linha %d", i+2))
		}

		startDate, err := time.Parse(dateLayout, row[6])
		if err != nil {
			return nil, newLoadError(PromoFile, errors.Wrapf(err, "promo_start_date inválida na linha %d", i+2))
		}

		endDate, err := time.Parse(dateLayout, row[7])
		if err != nil {
			return nil, newLoadError(PromoFile, errors.Wrapf(err, "promo_end_date inválida na linha %d", i+2))
		}

		promos = append(promos, domain.PromotionRecord{
			ProductName:        row[0],
			PromoType:          row[1],
			DiscountPercentage: discount,
			Region:             row[3],
			Channel:            row[4],
			PromoCost:          cost,
			PromoStartDate:     startDate,
			PromoEndDate:       endDate,
		})
	}

	return promos, nil
}

func (l *fileLoader) loadCatalog() ([]domain.ProductCatalogEntry, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, CatalogFile))
	if err != nil {
		return nil, newLoadError(CatalogFile, err)
	}

	var catalog []domain.ProductCatalogEntry
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, newLoadError(CatalogFile, errors.Wrap(err, "JSON inválido"))
	}

	return catalog, nil
}

func (l *fileLoader) loadProfile() (*domain.CompanyProfile, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, ProfileFile))
	if err != nil {
		return nil, newLoadError(ProfileFile, err)
	}

	profile := &domain.CompanyProfile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, newLoadError(ProfileFile, errors.Wrap(err, "JSON inválido"))
	}

	return profile, nil
}

// readCSV lê um arquivo CSV com cabeçalho e valida o número de colunas
func (l *fileLoader) readCSV(name string, columns int) ([][]string, error) {
	f, err := os.Open(filepath.Join(l.dataDir, name))
	if err != nil {
		return nil, newLoadError(name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, newLoadError(name, errors.Wrap(err, "CSV estruturalmente inválido"))
	}

	if len(records) == 0 {
		return nil, newLoadError(name, fmt.Errorf("arquivo sem cabeçalho"))
	}

	// Descarta a linha de cabeçalho
	return records[1:], nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
