package service

import (
	"time"

	"nhatro_backend/internals/constants"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
)

// DeriveDisplayStatus: "overdue" chỉ suy ra lúc hiển thị từ hạn thanh toán,
// không ghi xuống DB, nên status lưu và status hiển thị có thể khác nhau.
func DeriveDisplayStatus(m invoiceModel.RentalInvoiceModel, now time.Time) string {
	switch m.InvoiceStatus {
	case constants.InvoicePaid, constants.InvoiceCancelled:
		return m.InvoiceStatus
	}
	due := m.InvoiceDueDate
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return constants.InvoiceOverdue
	}
	return m.InvoiceStatus
}
