package predicting

import (
	"sync/atomic"

	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
)

type activeModel struct {
	artifact *modeling.Artifact
	modelID  string
}

// ModelContext guarda o artefato ativo do serviço. A troca é atômica: leitores
// em voo terminam com o modelo que pegaram e requisições novas enxergam o novo
// artefato imediatamente, sem lock no caminho de predição.
type ModelContext struct {
	active atomic.Pointer[activeModel]
}

func NewModelContext() *ModelContext {
	return &ModelContext{}
}

// Current retorna o artefato ativo ou ErrModelNotReady antes do primeiro Swap
func (c *ModelContext) Current() (*modeling.Artifact, error) {
	active := c.active.Load()
	if active == nil {
		return nil, ErrModelNotReady
	}
	return active.artifact, nil
}

// CurrentID retorna o identificador do artefato ativo, vazio se não há modelo
func (c *ModelContext) CurrentID() string {
	active := c.active.Load()
	if active == nil {
		return ""
	}
	return active.modelID
}

// Swap promove o artefato recém-treinado ou carregado a modelo ativo
func (c *ModelContext) Swap(artifact *modeling.Artifact, modelID string) {
	c.active.Store(&activeModel{artifact: artifact, modelID: modelID})
}

// Ready informa se já existe modelo ativo
func (c *ModelContext) Ready() bool {
	return c.active.Load() != nil
}
