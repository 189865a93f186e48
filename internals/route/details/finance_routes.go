package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invoiceController "nhatro_backend/internals/features/finance/invoices/controller"
	utilityController "nhatro_backend/internals/features/finance/utilities/controller"
)

func FinanceRoutes(r fiber.Router, db *gorm.DB) {
	inv := invoiceController.NewInvoiceController(db)
	i := r.Group("/invoices")
	i.Get("/", inv.ListInvoices)
	i.Get("/draft", inv.PrepareDraft)
	i.Get("/report", inv.ExportMonthlyReport)
	i.Get("/:id", inv.GetInvoice)
	i.Get("/:id/export", inv.ExportReceipt)
	i.Post("/", inv.CreateInvoice)
	i.Post("/:id/mark-paid", inv.MarkPaid)
	i.Post("/:id/send", inv.SendInvoice)
	i.Post("/:id/payment-link", inv.CreatePaymentLink)
	i.Patch("/:id/colors", inv.UpdateColorSettings)
	i.Delete("/:id", inv.DeleteInvoice)

	util := utilityController.NewUtilityController(db)
	u := r.Group("/utilities")
	u.Get("/", util.ListUtilities)
	u.Post("/", util.CreateUtility)
	u.Post("/bills/:billId/mark-paid", util.MarkBillPaid)
	u.Patch("/:id", util.UpdateUtility)
	u.Delete("/:id", util.DeleteUtility)
	u.Get("/:id/bills", util.ListBills)
	u.Post("/:id/bills", util.CreateBill)
}
