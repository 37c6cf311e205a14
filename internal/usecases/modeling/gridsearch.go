package modeling

import (
	"math"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Grade de hiperparâmetros varrida pela otimização
var (
	gridNEstimators     = []int{50, 100, 200}
	gridMaxDepth        = []int{5, 10, 15, 20}
	gridMinSamplesSplit = []int{2, 5, 10}
	gridMinSamplesLeaf  = []int{1, 2, 4}
)

const cvFolds = 5

type candidate struct {
	nEstimators     int
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

// gridSearch avalia cada combinação da grade por validação cruzada de cvFolds
// dobras sobre o conjunto de treino e retorna um regressor não ajustado com os
// hiperparâmetros de menor MSE médio. Os candidatos são avaliados em paralelo,
// limitado ao número de CPUs; empates resolvem pela ordem da grade.
func gridSearch(x [][]float64, y []float64, modelType string) Regressor {
	candidates := make([]candidate, 0, len(gridNEstimators)*len(gridMaxDepth)*len(gridMinSamplesSplit)*len(gridMinSamplesLeaf))
	for _, ne := range gridNEstimators {
		for _, md := range gridMaxDepth {
			for _, ms := range gridMinSamplesSplit {
				for _, ml := range gridMinSamplesLeaf {
					candidates = append(candidates, candidate{
						nEstimators:     ne,
						maxDepth:        md,
						minSamplesSplit: ms,
						minSamplesLeaf:  ml,
					})
				}
			}
		}
	}

	scores := make([]float64, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				scores[j] = crossValidate(x, y, modelType, candidates[j])
			}
		}()
	}

	for j := range candidates {
		jobs <- j
	}
	close(jobs)
	wg.Wait()

	best := 0
	for j := 1; j < len(candidates); j++ {
		if scores[j] < scores[best] {
			best = j
		}
	}

	logrus.WithFields(logrus.Fields{
		"model_type":        modelType,
		"n_estimators":      candidates[best].nEstimators,
		"max_depth":         candidates[best].maxDepth,
		"min_samples_split": candidates[best].minSamplesSplit,
		"min_samples_leaf":  candidates[best].minSamplesLeaf,
		"cv_mse":            scores[best],
	}).Info("Busca em grade concluída")

	return regressorWithParams(modelType, candidates[best])
}

// crossValidate retorna o MSE médio do candidato sobre dobras contíguas
func crossValidate(x [][]float64, y []float64, modelType string, c candidate) float64 {
	n := len(x)
	folds := cvFolds
	if folds > n {
		folds = n
	}

	total := 0.0
	for f := 0; f < folds; f++ {
		lo := f * n / folds
		hi := (f + 1) * n / folds

		trainX := make([][]float64, 0, n-(hi-lo))
		trainY := make([]float64, 0, n-(hi-lo))
		for i := 0; i < n; i++ {
			if i >= lo && i < hi {
				continue
			}
			trainX = append(trainX, x[i])
			trainY = append(trainY, y[i])
		}

		model := regressorWithParams(modelType, c)
		if err := model.Fit(trainX, trainY); err != nil {
			return math.Inf(1)
		}

		predicted := model.Predict(x[lo:hi])
		total += meanSquaredError(y[lo:hi], predicted)
	}

	return total / float64(folds)
}
