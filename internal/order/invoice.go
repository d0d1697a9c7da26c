package order

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

var freeShippingThreshold = decimal.NewFromInt(500)

// RenderInvoice lays out a PDF invoice for the order: letterhead,
// bill-to block, a line table, totals and payment status.
func RenderInvoice(o *Order, ownerName, ownerEmail string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "Grocery Shop", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "123 Main Street, City, Country", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: +1234567890 | Email: info@groceryshop.com", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// Invoice header
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Invoice #: "+o.ID.String(), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Date: "+o.CreatedAt.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Bill To: "+ownerName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Email: "+ownerEmail, "", 1, "L", false, 0, "")
	addr := fmt.Sprintf("Shipping Address: %s, %s, %s",
		o.ShippingAddress.Address, o.ShippingAddress.City, o.ShippingAddress.PostalCode)
	pdf.CellFormat(0, 5, addr, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+o.ShippingAddress.Phone, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Line table
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range o.Items {
		title := item.Title
		if title == "" {
			title = "Product"
		}
		pdf.CellFormat(80, 6, title, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "Rs. "+item.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "Rs. "+item.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	// Totals; shipping is free above the threshold
	shipping := decimal.NewFromInt(50)
	if o.Total.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	pdf.Ln(2)
	pdf.CellFormat(140, 6, "Subtotal:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Rs. "+o.Total.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.CellFormat(140, 6, "Shipping:", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Rs. "+shipping.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 7, "Total:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Rs. "+o.Total.Add(shipping).StringFixed(2), "T", 1, "R", false, 0, "")

	// Payment block
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Payment Method: "+string(o.PaymentMethod), "", 1, "L", false, 0, "")
	paymentStatus := "Pending"
	if o.IsPaid {
		paymentStatus = "Paid"
	}
	pdf.CellFormat(0, 5, "Payment Status: "+paymentStatus, "", 1, "L", false, 0, "")
	if o.IsPaid && o.PaidAt != nil {
		pdf.CellFormat(0, 5, "Paid on: "+o.PaidAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	}

	// Footer
	pdf.Ln(12)
	pdf.CellFormat(0, 5, "Thank you for shopping with us!", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 5, "For questions regarding this invoice, please contact our customer support.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
