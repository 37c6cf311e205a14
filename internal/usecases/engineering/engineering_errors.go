package engineering

import (
	"errors"
	"fmt"
	"time"
)

// Erros específicos para a engenharia de features
var (
	ErrNilDataset          = errors.New("dataset not loaded")
	ErrInvalidPromoPeriod  = errors.New("promotion start date after end date")
	ErrUnknownOverlapPolicy = errors.New("unknown promotion overlap policy")
)

// InvalidPromotionError identifica a promoção rejeitada pela validação do join
type InvalidPromotionError struct {
	ProductName string
	StartDate   time.Time
	EndDate     time.Time
}

// Error implementa a interface error
func (e *InvalidPromotionError) Error() string {
	return fmt.Sprintf(
		"%s: produto %q (%s > %s)",
		ErrInvalidPromoPeriod.Error(),
		e.ProductName,
		e.StartDate.Format(time.DateOnly),
		e.EndDate.Format(time.DateOnly),
	)
}

// Unwrap retorna o erro subjacente
func (e *InvalidPromotionError) Unwrap() error {
	return ErrInvalidPromoPeriod
}
