package predicting

import "errors"

// Erros específicos para a predição de impacto
var (
	ErrModelNotReady = errors.New("no trained model available")
	ErrEmptyBulk     = errors.New("bulk request has no products")
)
