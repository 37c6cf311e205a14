package modeling

import (
	"fmt"
	"sort"

	"github.com/vfg2006/promo-impact-api/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Preprocessor converte FeatureRows na matriz numérica consumida pelos
// regressores: numéricas padronizadas (média zero, variância um, com
// estatísticas apenas do conjunto de treino) seguidas das categóricas one-hot.
// Categoria desconhecida na predição vira um bloco todo-zero, nunca um erro.
// Campos exportados para serialização via gob junto com o artefato.
type Preprocessor struct {
	NumericalFeatures   []string
	CategoricalFeatures []string

	Means  []float64
	Scales []float64

	// Categorias observadas no treino, em ordem determinística, por coluna
	Categories map[string][]string

	Fitted bool
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		NumericalFeatures:   domain.NumericalFeatures,
		CategoricalFeatures: domain.CategoricalFeatures,
	}
}

// Fit aprende as estatísticas de padronização e o vocabulário das categóricas
func (p *Preprocessor) Fit(rows []domain.FeatureRow) {
	p.Means = make([]float64, len(p.NumericalFeatures))
	p.Scales = make([]float64, len(p.NumericalFeatures))

	column := make([]float64, len(rows))
	for j, name := range p.NumericalFeatures {
		for i, row := range rows {
			column[i] = row.NumericValue(name)
		}

		mean, std := stat.MeanStdDev(column, nil)
		if len(rows) < 2 {
			mean = stat.Mean(column, nil)
			std = 0
		}
		if std == 0 {
			// Coluna constante: escala 1 para não dividir por zero
			std = 1
		}

		p.Means[j] = mean
		p.Scales[j] = std
	}

	p.Categories = make(map[string][]string, len(p.CategoricalFeatures))
	for _, name := range p.CategoricalFeatures {
		seen := make(map[string]struct{})
		for _, row := range rows {
			seen[row.CategoricalValue(name)] = struct{}{}
		}

		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)

		p.Categories[name] = values
	}

	p.Fitted = true
}

// Transform projeta as linhas na matriz numérica expandida
func (p *Preprocessor) Transform(rows []domain.FeatureRow) ([][]float64, error) {
	if !p.Fitted {
		return nil, ErrNotFitted
	}

	width := p.width()
	matrix := make([][]float64, len(rows))

	for i, row := range rows {
		vec := make([]float64, width)

		for j, name := range p.NumericalFeatures {
			vec[j] = (row.NumericValue(name) - p.Means[j]) / p.Scales[j]
		}

		offset := len(p.NumericalFeatures)
		for _, name := range p.CategoricalFeatures {
			values := p.Categories[name]
			actual := row.CategoricalValue(name)
			for k, v := range values {
				if v == actual {
					vec[offset+k] = 1
					break
				}
			}
			offset += len(values)
		}

		matrix[i] = vec
	}

	return matrix, nil
}

// FitTransform aprende as estatísticas e projeta as mesmas linhas
func (p *Preprocessor) FitTransform(rows []domain.FeatureRow) ([][]float64, error) {
	p.Fit(rows)
	return p.Transform(rows)
}

// FeatureNames retorna os nomes das colunas expandidas, na ordem da matriz
func (p *Preprocessor) FeatureNames() []string {
	names := make([]string, 0, p.width())
	names = append(names, p.NumericalFeatures...)

	for _, name := range p.CategoricalFeatures {
		for _, v := range p.Categories[name] {
			names = append(names, fmt.Sprintf("%s_%s", name, v))
		}
	}

	return names
}

func (p *Preprocessor) width() int {
	width := len(p.NumericalFeatures)
	for _, name := range p.CategoricalFeatures {
		width += len(p.Categories[name])
	}
	return width
}
