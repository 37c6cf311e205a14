package domain

import "time"

// SalesRecord representa uma linha bruta de vendas do arquivo sales_data.csv.
// QuantitySold e Revenue são ponteiros: célula vazia no CSV vira nil e o
// preenchimento com zero é responsabilidade da engenharia de features, não do loader.
type SalesRecord struct {
	ProductName  string    `json:"product_name"`
	Date         time.Time `json:"date"`
	QuantitySold *float64  `json:"quantity_sold"`
	Revenue      *float64  `json:"revenue"`
}
