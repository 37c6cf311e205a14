package domain

// Dataset agrupa as quatro fontes obrigatórias carregadas do diretório de dados.
// Ou todas as fontes carregam com sucesso, ou o loader falha sem estado parcial.
type Dataset struct {
	Sales      []SalesRecord
	Promotions []PromotionRecord
	Catalog    []ProductCatalogEntry
	Profile    *CompanyProfile
}
