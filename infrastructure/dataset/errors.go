package dataset

// LoadError indica que uma das fontes obrigatórias está ausente, malformada ou
// estruturalmente inválida. A carga é tudo-ou-nada: nenhum estado parcial é retido.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return "erro ao carregar fonte de dados " + e.File + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(file string, err error) *LoadError {
	return &LoadError{File: file, Err: err}
}
