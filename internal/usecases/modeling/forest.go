package modeling

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// RandomForest é o regressor de floresta aleatória: NEstimators árvores
// treinadas sobre amostras bootstrap independentes, predição pela média.
// A semente fixa torna o treinamento reproduzível entre execuções.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            int64

	Trees       []*TreeNode
	Importances []float64
}

func (rf *RandomForest) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return ErrLengthMismatch
	}

	n := len(x)
	width := len(x[0])
	cfg := treeConfig{
		maxDepth:        rf.MaxDepth,
		minSamplesSplit: rf.MinSamplesSplit,
		minSamplesLeaf:  rf.MinSamplesLeaf,
	}

	rf.Trees = make([]*TreeNode, rf.NEstimators)
	rf.Importances = make([]float64, width)

	for t := 0; t < rf.NEstimators; t++ {
		// Cada árvore tem seu próprio gerador derivado da semente base,
		// independente da ordem de execução
		rng := rand.New(rand.NewSource(rf.Seed + int64(t)))

		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}

		rf.Trees[t] = buildTree(x, y, idx, 0, cfg, rf.Importances)
	}

	if total := floats.Sum(rf.Importances); total > 0 {
		floats.Scale(1/total, rf.Importances)
	}

	return nil
}

func (rf *RandomForest) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		sum := 0.0
		for _, tree := range rf.Trees {
			sum += tree.predict(row)
		}
		out[i] = sum / float64(len(rf.Trees))
	}
	return out
}

func (rf *RandomForest) FeatureImportances() []float64 {
	return rf.Importances
}
