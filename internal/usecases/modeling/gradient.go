package modeling

import "gonum.org/v1/gonum/floats"

// GradientBoosting é o regressor de boosting por gradiente para perda
// quadrática: parte da média do alvo e encadeia árvores rasas ajustadas aos
// resíduos, cada uma contribuindo com LearningRate da sua predição.
type GradientBoosting struct {
	NEstimators     int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int

	Init        float64
	Trees       []*TreeNode
	Importances []float64
}

func (gb *GradientBoosting) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return ErrLengthMismatch
	}

	n := len(x)
	width := len(x[0])
	cfg := treeConfig{
		maxDepth:        gb.MaxDepth,
		minSamplesSplit: gb.MinSamplesSplit,
		minSamplesLeaf:  gb.MinSamplesLeaf,
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	gb.Init = floats.Sum(y) / float64(n)
	gb.Trees = make([]*TreeNode, 0, gb.NEstimators)
	gb.Importances = make([]float64, width)

	current := make([]float64, n)
	residual := make([]float64, n)
	for i := range current {
		current[i] = gb.Init
	}

	for t := 0; t < gb.NEstimators; t++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}

		tree := buildTree(x, residual, idx, 0, cfg, gb.Importances)
		gb.Trees = append(gb.Trees, tree)

		for i, row := range x {
			current[i] += gb.LearningRate * tree.predict(row)
		}
	}

	if total := floats.Sum(gb.Importances); total > 0 {
		floats.Scale(1/total, gb.Importances)
	}

	return nil
}

func (gb *GradientBoosting) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		pred := gb.Init
		for _, tree := range gb.Trees {
			pred += gb.LearningRate * tree.predict(row)
		}
		out[i] = pred
	}
	return out
}

func (gb *GradientBoosting) FeatureImportances() []float64 {
	return gb.Importances
}
