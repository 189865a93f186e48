package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
)

var (
	SnapClient        snap.Client
	midtransServerKey string
)

// InitMidtrans khởi tạo Snap client. useProd=false dùng sandbox.
func InitMidtrans(serverKey string, useProd bool) {
	midtransServerKey = serverKey
	env := midtrans.Sandbox
	if useProd {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// GenerateSnapToken tạo link thanh toán Midtrans cho một hoá đơn;
// order_id chính là invoice_number nên webhook tra ngược được.
func GenerateSnapToken(inv invoiceModel.RentalInvoiceModel, tenantName, tenantPhone string) (token string, redirectURL string, err error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  inv.InvoiceNumber,
			GrossAmt: inv.InvoiceTotalAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: tenantName,
			Phone: tenantPhone,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// VerifyWebhookSignature kiểm tra chữ ký sha512(order_id+status_code+gross_amount+server_key)
// theo tài liệu Midtrans.
func VerifyWebhookSignature(orderID, statusCode, grossAmount, signature string) bool {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + midtransServerKey))
	return hex.EncodeToString(h[:]) == signature
}

// HandleInvoicePaymentWebhook xử lý notification từ Midtrans: settlement/capture
// đánh dấu hoá đơn đã trả, expire/cancel đưa về cancelled nếu chưa trả.
func HandleInvoicePaymentWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook thiếu trường:", body)
		return fmt.Errorf("invalid payload")
	}

	var inv invoiceModel.RentalInvoiceModel
	if err := db.Where("invoice_number = ?", orderID).First(&inv).Error; err != nil {
		log.Println("[ERROR] Không tìm thấy hoá đơn cho order_id:", orderID)
		return fmt.Errorf("invoice with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		if inv.InvoiceStatus == constants.InvoicePaid {
			return nil
		}
		now := time.Now()
		inv.InvoiceStatus = constants.InvoicePaid
		inv.InvoicePaidAt = &now
	case "expire", "cancel":
		if inv.InvoiceStatus == constants.InvoicePaid {
			return nil
		}
		inv.InvoiceStatus = constants.InvoiceCancelled
	default:
		log.Println("[INFO] Bỏ qua transaction_status:", status)
		return nil
	}

	return db.Save(&inv).Error
}
