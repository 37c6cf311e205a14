package modelstore

import (
	"errors"
	"fmt"
)

// Erros específicos para a persistência de artefatos de modelo
var (
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrArtifactCorrupt  = errors.New("model artifact is corrupt")
)

// CorruptError identifica o arquivo de artefato que falhou ao desserializar
type CorruptError struct {
	Path string
	Err  error
}

// Error implementa a interface error
func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrArtifactCorrupt.Error(), e.Path, e.Err)
}

// Unwrap retorna o erro subjacente
func (e *CorruptError) Unwrap() error {
	return ErrArtifactCorrupt
}

func newCorruptError(path string, err error) *CorruptError {
	return &CorruptError{Path: path, Err: err}
}
