package modeling

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TreeNode é um nó da árvore de regressão. Folhas têm Left == nil e carregam
// apenas Value (média do alvo nas amostras do nó). Campos exportados para gob.
type TreeNode struct {
	Feature   int
	Threshold float64
	Value     float64
	Left      *TreeNode
	Right     *TreeNode
}

func (n *TreeNode) predict(x []float64) float64 {
	node := n
	for node.Left != nil {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// treeConfig controla o crescimento de uma árvore individual
type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

// buildTree cresce a árvore por particionamento binário recursivo, minimizando
// a soma dos erros quadráticos (critério de variância). A redução de impureza
// de cada split é acumulada em importances, indexada pela feature usada.
func buildTree(x [][]float64, y []float64, idx []int, depth int, cfg treeConfig, importances []float64) *TreeNode {
	node := &TreeNode{Value: meanAt(y, idx)}

	if depth >= cfg.maxDepth || len(idx) < cfg.minSamplesSplit {
		return node
	}

	parentSSE := sseAt(y, idx, node.Value)
	if parentSSE == 0 {
		return node
	}

	feature, threshold, gain, ok := bestSplit(x, y, idx, cfg.minSamplesLeaf, parentSSE)
	if !ok {
		return node
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	importances[feature] += gain

	node.Feature = feature
	node.Threshold = threshold
	node.Left = buildTree(x, y, left, depth+1, cfg, importances)
	node.Right = buildTree(x, y, right, depth+1, cfg, importances)

	return node
}

// bestSplit varre cada feature com as amostras ordenadas e somas de prefixo,
// avaliando apenas cortes entre valores distintos. Retorna o par
// (feature, limiar) de maior redução de SSE que respeita minSamplesLeaf.
func bestSplit(x [][]float64, y []float64, idx []int, minLeaf int, parentSSE float64) (int, float64, float64, bool) {
	n := len(idx)
	numFeatures := len(x[idx[0]])

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0

	sorted := make([]int, n)
	for f := 0; f < numFeatures; f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return x[sorted[a]][f] < x[sorted[b]][f]
		})

		sumLeft, sumLeftSq := 0.0, 0.0
		sumTotal, sumTotalSq := 0.0, 0.0
		for _, i := range sorted {
			sumTotal += y[i]
			sumTotalSq += y[i] * y[i]
		}

		for p := 1; p < n; p++ {
			yi := y[sorted[p-1]]
			sumLeft += yi
			sumLeftSq += yi * yi

			// Sem corte no meio de valores iguais
			if x[sorted[p-1]][f] == x[sorted[p]][f] {
				continue
			}
			if p < minLeaf || n-p < minLeaf {
				continue
			}

			nl, nr := float64(p), float64(n-p)
			sseLeft := sumLeftSq - sumLeft*sumLeft/nl
			sumRight := sumTotal - sumLeft
			sseRight := (sumTotalSq - sumLeftSq) - sumRight*sumRight/nr

			gain := parentSSE - sseLeft - sseRight
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (x[sorted[p-1]][f] + x[sorted[p]][f]) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, 0, false
	}
	return bestFeature, bestThreshold, bestGain, true
}

func meanAt(y []float64, idx []int) float64 {
	values := make([]float64, len(idx))
	for i, j := range idx {
		values[i] = y[j]
	}
	return stat.Mean(values, nil)
}

func sseAt(y []float64, idx []int, mean float64) float64 {
	sse := 0.0
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return sse
}
