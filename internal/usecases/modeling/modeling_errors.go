package modeling

import "errors"

// Erros específicos para o treinamento de modelos
var (
	ErrEmptyTrainingSet = errors.New("training feature table is empty")
	ErrLengthMismatch   = errors.New("feature and target lengths do not match")
	ErrUnknownModelType = errors.New("unknown model type")
	ErrNotFitted        = errors.New("pipeline has not been fitted")
)
