package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/configs"
	"nhatro_backend/internals/constants"
	exportpkg "nhatro_backend/internals/features/finance/export"
	dto "nhatro_backend/internals/features/finance/invoices/dto"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
	service "nhatro_backend/internals/features/finance/invoices/service"
	helper "nhatro_backend/internals/helpers"
)

type InvoiceController struct {
	DB      *gorm.DB
	Billing *service.BillingService
	Render  *exportpkg.RenderClient
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{
		DB:      db,
		Billing: service.NewBillingService(db),
		Render:  exportpkg.NewRenderClient(configs.RenderServiceURL),
	}
}

// =======================================================
// GET /api/a/invoices/draft?room_id=&collection_day=&auto_load=
//
// Trả draft đã tính sẵn (kỳ, tiền phòng theo hợp đồng, số đọc đầu kỳ)
// để form hiển thị trước khi người dùng chỉnh.
// =======================================================
func (h *InvoiceController) PrepareDraft(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Query("room_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "room_id không hợp lệ")
	}
	day, _ := strconv.Atoi(c.Query("collection_day", "1"))
	autoLoad := c.Query("auto_load", "true") != "false"

	draft, err := h.Billing.PrepareDraft(roomID, day, autoLoad)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveTenant) {
			return helper.JsonError(c, fiber.StatusConflict, "Phòng chưa có người thuê với hợp đồng hiệu lực")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "", draft)
}

// =======================================================
// POST /api/a/invoices
// =======================================================
func (h *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	draft := in.ToDraft()
	if in.AutoPeriod || in.PeriodStart == nil || in.PeriodEnd == nil {
		draft = service.ApplyPeriod(draft, time.Now())
	}

	m, err := h.Billing.BuildInvoice(draft)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveTenant) {
			return helper.JsonError(c, fiber.StatusConflict, "Phòng chưa có người thuê với hợp đồng hiệu lực")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	if err := h.DB.Create(&m).Error; err != nil {
		log.Println("[ERROR] Tạo hoá đơn:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonCreated(c, "Đã tạo hoá đơn "+m.InvoiceNumber, dto.ToInvoiceResponse(m, time.Now()))
}

// =======================================================
// GET /api/a/invoices?room_id=&status=&limit=
//
// Mặc định mới nhất trước; limit dùng cho widget "hoá đơn gần đây".
// =======================================================
func (h *InvoiceController) ListInvoices(c *fiber.Ctx) error {
	q := h.DB.Model(&invoiceModel.RentalInvoiceModel{})

	if s := c.Query("room_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "room_id không hợp lệ")
		}
		q = q.Where("invoice_room_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("invoice_status = ?", s)
	}

	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			return helper.JsonError(c, fiber.StatusBadRequest, "limit không hợp lệ")
		}
		var list []invoiceModel.RentalInvoiceModel
		if err := q.Order("invoice_created_at DESC").Limit(n).Find(&list).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
		return helper.JsonOK(c, "", dto.ToInvoiceResponses(list, time.Now()))
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	var list []invoiceModel.RentalInvoiceModel
	if err := q.Order("invoice_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	pg := helper.BuildPagination(total, p.Page, p.PerPage)
	return helper.JsonList(c, "", dto.ToInvoiceResponses(list, time.Now()), &pg)
}

// =======================================================
// GET /api/a/invoices/:id
// =======================================================
func (h *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	m, fErr := h.loadInvoice(c)
	if fErr != nil {
		return fErr
	}
	return helper.JsonOK(c, "", dto.ToInvoiceResponse(*m, time.Now()))
}

// =======================================================
// POST /api/a/invoices/:id/mark-paid: idempotent
// =======================================================
func (h *InvoiceController) MarkPaid(c *fiber.Ctx) error {
	m, fErr := h.loadInvoice(c)
	if fErr != nil {
		return fErr
	}

	if m.InvoiceStatus != constants.InvoicePaid {
		now := time.Now()
		m.InvoiceStatus = constants.InvoicePaid
		m.InvoicePaidAt = &now
		if err := h.DB.Save(m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
	}
	return helper.JsonUpdated(c, "Đã ghi nhận thanh toán", dto.ToInvoiceResponse(*m, time.Now()))
}

// =======================================================
// POST /api/a/invoices/:id/send: draft → sent
// =======================================================
func (h *InvoiceController) SendInvoice(c *fiber.Ctx) error {
	m, fErr := h.loadInvoice(c)
	if fErr != nil {
		return fErr
	}

	switch m.InvoiceStatus {
	case constants.InvoiceDraft:
		m.InvoiceStatus = constants.InvoiceSent
		if err := h.DB.Save(m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
	case constants.InvoiceSent:
		// gửi lại thì giữ nguyên
	default:
		return helper.JsonError(c, fiber.StatusConflict, "Hoá đơn ở trạng thái này không gửi được")
	}
	return helper.JsonUpdated(c, "Đã gửi hoá đơn", dto.ToInvoiceResponse(*m, time.Now()))
}

// =======================================================
// PATCH /api/a/invoices/:id/colors
// =======================================================
func (h *InvoiceController) UpdateColorSettings(c *fiber.Ctx) error {
	m, fErr := h.loadInvoice(c)
	if fErr != nil {
		return fErr
	}

	var in dto.ColorSettingsDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	raw, err := service.MergeColorSettings(m.InvoiceColorSettings, in.ThemeName, in.HeaderBg, in.HeaderText, in.TotalBg, in.TotalText)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	m.InvoiceColorSettings = raw

	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã cập nhật màu hoá đơn", dto.ToInvoiceResponse(*m, time.Now()))
}

// =======================================================
// DELETE /api/a/invoices/:id: xoá hẳn, không khôi phục
// =======================================================
func (h *InvoiceController) DeleteInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}
	res := h.DB.Unscoped().Where("invoice_id = ?", id).Delete(&invoiceModel.RentalInvoiceModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy hoá đơn")
	}
	return helper.JsonDeleted(c, "Đã xoá hoá đơn", fiber.Map{"invoice_id": id})
}

// =======================================================
// POST /api/a/invoices/:id/payment-link: tạo link Midtrans
// =======================================================
func (h *InvoiceController) CreatePaymentLink(c *fiber.Ctx) error {
	m, fErr := h.loadInvoice(c)
	if fErr != nil {
		return fErr
	}
	if m.InvoiceStatus == constants.InvoicePaid {
		return helper.JsonError(c, fiber.StatusConflict, "Hoá đơn đã được thanh toán")
	}

	info, err := h.receiptInfo(*m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	token, redirectURL, err := service.GenerateSnapToken(*m, info.TenantName, info.TenantPhone)
	if err != nil {
		log.Println("[ERROR] Tạo snap token:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Không tạo được link thanh toán")
	}
	return helper.JsonOK(c, "", fiber.Map{
		"token":        token,
		"redirect_url": redirectURL,
	})
}

// =======================================================
// POST /api/public/payments/midtrans/webhook
// =======================================================
func (h *InvoiceController) MidtransWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	orderID, _ := body["order_id"].(string)
	statusCode, _ := body["status_code"].(string)
	grossAmount, _ := body["gross_amount"].(string)
	signature, _ := body["signature_key"].(string)
	if !service.VerifyWebhookSignature(orderID, statusCode, grossAmount, signature) {
		log.Println("[WARN] Webhook sai chữ ký, order_id:", orderID)
		return helper.JsonError(c, fiber.StatusForbidden, "invalid signature")
	}

	if err := service.HandleInvoicePaymentWebhook(h.DB, body); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "OK", nil)
}

// =======================================================
// GET /api/a/invoices/:id/export?format=png|pdf|webp
//
// Render biên nhận theo template_type của hoá đơn rồi gửi sang
// dịch vụ render; webp là png nén lại phía server.
// =======================================================
func (h *InvoiceController) ExportReceipt(c *fiber.Ctx) error {
	m, fErr := h.loadInvoice(c)
	if fErr != nil {
		return fErr
	}

	format := c.Query("format", exportpkg.FormatPNG)
	if format != exportpkg.FormatPNG && format != exportpkg.FormatPDF && format != exportpkg.FormatWebP {
		return helper.JsonError(c, fiber.StatusBadRequest, "format phải là png, pdf hoặc webp")
	}

	info, err := h.receiptInfo(*m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	markup, err := service.RendererFor(m.InvoiceTemplateType).Render(*m, info)
	if err != nil {
		log.Println("[ERROR] Render biên nhận:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	renderFormat := format
	if format == exportpkg.FormatWebP {
		renderFormat = exportpkg.FormatPNG
	}
	res, err := h.Render.Render(markup, renderFormat, "bien-nhan-"+m.InvoiceNumber)
	if err != nil {
		log.Println("[ERROR] Xuất biên nhận:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Dịch vụ xuất ảnh đang lỗi, thử lại sau")
	}

	content, contentType, filename := res.Content, res.ContentType, res.Filename
	if format == exportpkg.FormatWebP {
		content, err = exportpkg.ToWebP(res.Content, 1080, 85)
		if err != nil {
			log.Println("[ERROR] Nén webp:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
		contentType = "image/webp"
		filename = "bien-nhan-" + m.InvoiceNumber + ".webp"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

// =======================================================
// GET /api/a/invoices/report?month=YYYY-MM
//
// Báo cáo XLSX toàn bộ hoá đơn phát sinh trong tháng.
// =======================================================
func (h *InvoiceController) ExportMonthlyReport(c *fiber.Ctx) error {
	now := time.Now()
	monthStr := c.Query("month", now.Format("2006-01"))
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "month phải có dạng YYYY-MM")
	}
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	type reportRow struct {
		invoiceModel.RentalInvoiceModel
		PropertyName   string `gorm:"column:property_name"`
		RoomNumber     string `gorm:"column:room_number"`
		TenantFullName string `gorm:"column:tenant_full_name"`
	}
	var rows []reportRow
	err = h.DB.Table("rental_invoices").
		Select("rental_invoices.*, properties.property_name, rooms.room_number, tenants.tenant_full_name").
		Joins("JOIN rooms ON rooms.room_id = rental_invoices.invoice_room_id").
		Joins("JOIN properties ON properties.property_id = rooms.room_property_id").
		Joins("JOIN tenants ON tenants.tenant_id = rental_invoices.invoice_tenant_id").
		Where("rental_invoices.invoice_deleted_at IS NULL").
		Where("rental_invoices.invoice_created_at >= ? AND rental_invoices.invoice_created_at < ?", from, to).
		Order("properties.property_name ASC, rooms.room_number ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	reportRows := make([]exportpkg.InvoiceReportRow, 0, len(rows))
	for _, r := range rows {
		reportRows = append(reportRows, exportpkg.InvoiceReportRow{
			InvoiceNumber: r.InvoiceNumber,
			PropertyName:  r.PropertyName,
			RoomNumber:    r.RoomNumber,
			TenantName:    r.TenantFullName,
			PeriodStart:   r.InvoicePeriodStart,
			PeriodEnd:     r.InvoicePeriodEnd,
			DueDate:       r.InvoiceDueDate,
			Status:        service.DeriveDisplayStatus(r.RentalInvoiceModel, now),
			TotalAmount:   r.InvoiceTotalAmount,
		})
	}

	blob, err := exportpkg.BuildInvoiceReport(reportRows, now)
	if err != nil {
		log.Println("[ERROR] Xuất báo cáo XLSX:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="bao-cao-hoa-don-`+monthStr+`.xlsx"`)
	return c.Send(blob)
}

// ---------------------------------------------------------------

func (h *InvoiceController) loadInvoice(c *fiber.Ctx) (*invoiceModel.RentalInvoiceModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}
	var m invoiceModel.RentalInvoiceModel
	if err := h.DB.First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy hoá đơn")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return &m, nil
}

func (h *InvoiceController) receiptInfo(m invoiceModel.RentalInvoiceModel) (service.ReceiptInfo, error) {
	type infoRow struct {
		PropertyName   string  `gorm:"column:property_name"`
		RoomNumber     string  `gorm:"column:room_number"`
		TenantFullName string  `gorm:"column:tenant_full_name"`
		TenantPhone    *string `gorm:"column:tenant_phone"`
	}
	var r infoRow
	err := h.DB.Table("rooms").
		Select("properties.property_name, rooms.room_number, tenants.tenant_full_name, tenants.tenant_phone").
		Joins("JOIN properties ON properties.property_id = rooms.room_property_id").
		Joins("JOIN tenants ON tenants.tenant_id = ?", m.InvoiceTenantID).
		Where("rooms.room_id = ?", m.InvoiceRoomID).
		Take(&r).Error
	if err != nil {
		return service.ReceiptInfo{}, err
	}
	info := service.ReceiptInfo{
		PropertyName: r.PropertyName,
		RoomNumber:   r.RoomNumber,
		TenantName:   r.TenantFullName,
	}
	if r.TenantPhone != nil {
		info.TenantPhone = *r.TenantPhone
	}
	return info, nil
}
