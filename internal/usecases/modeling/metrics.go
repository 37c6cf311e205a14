package modeling

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

func meanAbsoluteError(actual, predicted []float64) float64 {
	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

func meanSquaredError(actual, predicted []float64) float64 {
	sum := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return sum / float64(len(actual))
}

func rootMeanSquaredError(actual, predicted []float64) float64 {
	return math.Sqrt(meanSquaredError(actual, predicted))
}

// rSquared retorna o coeficiente de determinação. Alvo constante no conjunto
// de validação resulta em 0, não em divisão por zero.
func rSquared(actual, predicted []float64) float64 {
	mean := stat.Mean(actual, nil)

	ssTot := 0.0
	for _, v := range actual {
		d := v - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}

	ssRes := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		ssRes += d * d
	}

	return 1 - ssRes/ssTot
}
