package document

import (
	"testing"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListPDF(t *testing.T) {
	items := []domain.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "pc", Amount: 2},
		{Name: "flour", MeasurementUnit: "g", Amount: 500},
	}

	pdf, err := ShoppingListPDF(items)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestShoppingListPDFEmptyCart(t *testing.T) {
	pdf, err := ShoppingListPDF(nil)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
