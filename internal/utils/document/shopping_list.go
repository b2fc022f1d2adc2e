package document

import (
	"Foodgram-Backend/domain"
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ShoppingListPDF renders the aggregated shopping list, one line per
// ingredient, and returns the document bytes ready to send as attachment.
func ShoppingListPDF(items []domain.ShoppingListItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Shopping list", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Shopping list")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	if len(items) == 0 {
		pdf.Cell(0, 8, "Shopping cart is empty")
	}
	for _, item := range items {
		pdf.Cell(0, 8, fmt.Sprintf("%s (%s) - %d", item.Name, item.MeasurementUnit, item.Amount))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
