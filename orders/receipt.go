package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("receipt-secret")
}

// ReceiptPayload signs the order reference so the QR on a printed receipt
// can be verified later.
func ReceiptPayload(orderID, userID string) string {
	data := fmt.Sprintf("%s|%s", orderID, userID)
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// DownloadReceipt renders an order receipt as a PDF with a verification QR.
// Owner or admin only.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	order, ok := loadOrder(ctx, orderID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(order.OrderID, order.UserID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", order.Shipping.FullName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(100, 8, "Item")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(30, 8, "Price")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.Cell(100, 8, item.Name)
		pdf.Cell(25, 8, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)))
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(125, 8, "Total")
	pdf.Cell(30, 8, fmt.Sprintf("%.2f", order.Total))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s (%s)", order.PaymentMethod, order.PaymentStatus))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
