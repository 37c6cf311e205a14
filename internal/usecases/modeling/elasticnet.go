package modeling

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ElasticNet é a regressão linear com penalização combinada L1/L2, ajustada
// por descida de coordenadas sobre os dados centrados. Por ser linear, não
// expõe importâncias de features comparáveis às dos modelos de árvore.
type ElasticNet struct {
	Alpha   float64
	L1Ratio float64
	MaxIter int
	Tol     float64

	Coef      []float64
	Intercept float64
}

func (en *ElasticNet) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return ErrLengthMismatch
	}

	n := len(x)
	width := len(x[0])

	maxIter := en.MaxIter
	if maxIter <= 0 {
		maxIter = 1000
	}
	tol := en.Tol
	if tol <= 0 {
		tol = 1e-4
	}

	// Centraliza colunas e alvo; o intercepto é recuperado ao final
	colMeans := make([]float64, width)
	columns := make([][]float64, width)
	for j := 0; j < width; j++ {
		col := make([]float64, n)
		for i := range x {
			col[i] = x[i][j]
		}
		colMeans[j] = stat.Mean(col, nil)
		floats.AddConst(-colMeans[j], col)
		columns[j] = col
	}

	yMean := stat.Mean(y, nil)
	yc := make([]float64, n)
	for i := range y {
		yc[i] = y[i] - yMean
	}

	l1 := en.Alpha * en.L1Ratio
	l2 := en.Alpha * (1 - en.L1Ratio)

	norm := make([]float64, width)
	for j, col := range columns {
		norm[j] = floats.Dot(col, col) / float64(n)
	}

	en.Coef = make([]float64, width)
	residual := make([]float64, n)
	copy(residual, yc)

	for iter := 0; iter < maxIter; iter++ {
		maxChange := 0.0

		for j := 0; j < width; j++ {
			if norm[j] == 0 {
				continue
			}

			old := en.Coef[j]

			// rho inclui a contribuição atual da coordenada j
			rho := (floats.Dot(columns[j], residual) + old*norm[j]*float64(n)) / float64(n)
			coef := softThreshold(rho, l1) / (norm[j] + l2)

			if coef != old {
				en.Coef[j] = coef
				floats.AddScaled(residual, old-coef, columns[j])
				maxChange = math.Max(maxChange, math.Abs(coef-old))
			}
		}

		if maxChange < tol {
			break
		}
	}

	en.Intercept = yMean - floats.Dot(colMeans, en.Coef)

	return nil
}

func (en *ElasticNet) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = en.Intercept + floats.Dot(row, en.Coef)
	}
	return out
}

// FeatureImportances retorna nil: modelos lineares não participam do
// relatório de importâncias
func (en *ElasticNet) FeatureImportances() []float64 {
	return nil
}

func softThreshold(v, threshold float64) float64 {
	switch {
	case v > threshold:
		return v - threshold
	case v < -threshold:
		return v + threshold
	default:
		return 0
	}
}
