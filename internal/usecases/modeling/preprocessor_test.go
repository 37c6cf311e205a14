package modeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

func TestPreprocessorStandardizesNumericals(t *testing.T) {
	rows := []domain.FeatureRow{
		{BasePrice: 10, ProductCategory: "Beverage", PromoType: "Discount", Region: "National", Channel: "Retail"},
		{BasePrice: 20, ProductCategory: "Beverage", PromoType: "Discount", Region: "National", Channel: "Retail"},
		{BasePrice: 30, ProductCategory: "Beverage", PromoType: "Discount", Region: "National", Channel: "Retail"},
	}

	p := NewPreprocessor()
	matrix, err := p.FitTransform(rows)
	require.NoError(t, err)
	require.Len(t, matrix, 3)

	// base_price é a primeira coluna: média zero após padronização
	sum := matrix[0][0] + matrix[1][0] + matrix[2][0]
	assert.InDelta(t, 0.0, sum, 1e-9)
	assert.InDelta(t, -matrix[2][0], matrix[0][0], 1e-9)
	assert.InDelta(t, 0.0, matrix[1][0], 1e-9)
}

func TestPreprocessorConstantColumn(t *testing.T) {
	rows := []domain.FeatureRow{
		{BasePrice: 10},
		{BasePrice: 10},
	}

	p := NewPreprocessor()
	matrix, err := p.FitTransform(rows)
	require.NoError(t, err)

	// Coluna constante: escala 1, valor padronizado zero
	assert.Equal(t, 0.0, matrix[0][0])
	assert.Equal(t, 0.0, matrix[1][0])
}

func TestPreprocessorOneHotUnknownCategory(t *testing.T) {
	train := []domain.FeatureRow{
		{ProductCategory: "Beverage", PromoType: "Discount", Region: "National", Channel: "Retail"},
		{ProductCategory: "Snack", PromoType: "BOGO", Region: "South", Channel: "Online"},
	}

	p := NewPreprocessor()
	_, err := p.FitTransform(train)
	require.NoError(t, err)

	// Categoria nunca vista no treino: bloco one-hot todo zero, sem erro
	matrix, err := p.Transform([]domain.FeatureRow{
		{ProductCategory: "Frozen", PromoType: "Discount", Region: "National", Channel: "Retail"},
	})
	require.NoError(t, err)

	offset := len(p.NumericalFeatures)
	categories := p.Categories["product_category"]
	for k := range categories {
		assert.Equal(t, 0.0, matrix[0][offset+k])
	}
}

func TestPreprocessorFeatureNames(t *testing.T) {
	rows := []domain.FeatureRow{
		{ProductCategory: "Beverage", PromoType: "Discount", Region: "National", Channel: "Retail"},
		{ProductCategory: "Snack", PromoType: "Discount", Region: "National", Channel: "Retail"},
	}

	p := NewPreprocessor()
	_, err := p.FitTransform(rows)
	require.NoError(t, err)

	names := p.FeatureNames()

	// Numéricas primeiro, na ordem do contrato
	assert.Equal(t, "base_price", names[0])
	assert.Contains(t, names, "product_category_Beverage")
	assert.Contains(t, names, "product_category_Snack")
	assert.Contains(t, names, "promo_type_Discount")
	assert.Len(t, names, len(domain.NumericalFeatures)+2+1+1+1)
}

func TestPreprocessorTransformBeforeFit(t *testing.T) {
	p := NewPreprocessor()

	_, err := p.Transform([]domain.FeatureRow{{}})
	assert.ErrorIs(t, err, ErrNotFitted)
}
