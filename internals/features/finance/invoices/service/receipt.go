package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"gorm.io/datatypes"

	"nhatro_backend/internals/constants"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
	"nhatro_backend/internals/helpers/format"
)

// ReceiptRenderer biến một hoá đơn đã lưu thành markup HTML để
// gửi sang dịch vụ render ảnh/PDF.
type ReceiptRenderer interface {
	Render(inv invoiceModel.RentalInvoiceModel, info ReceiptInfo) (string, error)
}

// ReceiptInfo là phần dữ liệu hiển thị không nằm trên hoá đơn.
type ReceiptInfo struct {
	PropertyName string
	RoomNumber   string
	TenantName   string
	TenantPhone  string
}

// ColorSettings đọc từ cột jsonb invoice_color_settings.
type ColorSettings struct {
	ThemeName  string `json:"theme_name,omitempty"`
	HeaderBg   string `json:"header_bg,omitempty"`
	HeaderText string `json:"header_text,omitempty"`
	TotalBg    string `json:"total_bg,omitempty"`
	TotalText  string `json:"total_text,omitempty"`
}

func defaultColors() ColorSettings {
	return ColorSettings{
		ThemeName:  "classic",
		HeaderBg:   "#1e3a5f",
		HeaderText: "#ffffff",
		TotalBg:    "#f0f4f8",
		TotalText:  "#1e3a5f",
	}
}

func colorsOf(inv invoiceModel.RentalInvoiceModel) ColorSettings {
	cs := defaultColors()
	if len(inv.InvoiceColorSettings) == 0 {
		return cs
	}
	var stored ColorSettings
	if err := json.Unmarshal(inv.InvoiceColorSettings, &stored); err != nil {
		return cs
	}
	if stored.ThemeName != "" {
		cs.ThemeName = stored.ThemeName
	}
	if stored.HeaderBg != "" {
		cs.HeaderBg = stored.HeaderBg
	}
	if stored.HeaderText != "" {
		cs.HeaderText = stored.HeaderText
	}
	if stored.TotalBg != "" {
		cs.TotalBg = stored.TotalBg
	}
	if stored.TotalText != "" {
		cs.TotalText = stored.TotalText
	}
	return cs
}

// MergeColorSettings ghi đè từng khoá theme lên giá trị đã lưu;
// trường nil giữ nguyên giá trị cũ.
func MergeColorSettings(existing datatypes.JSON, themeName, headerBg, headerText, totalBg, totalText *string) (datatypes.JSON, error) {
	var cs ColorSettings
	if len(existing) > 0 {
		_ = json.Unmarshal(existing, &cs)
	}
	if themeName != nil {
		cs.ThemeName = *themeName
	}
	if headerBg != nil {
		cs.HeaderBg = *headerBg
	}
	if headerText != nil {
		cs.HeaderText = *headerText
	}
	if totalBg != nil {
		cs.TotalBg = *totalBg
	}
	if totalText != nil {
		cs.TotalText = *totalText
	}
	b, err := json.Marshal(cs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// RendererFor chọn mẫu theo template_type lưu trên hoá đơn.
func RendererFor(templateType string) ReceiptRenderer {
	if templateType == constants.TemplateSimple {
		return simpleRenderer{}
	}
	return professionalRenderer{}
}

type receiptLine struct {
	Label  string
	Detail string
	Amount string
}

type receiptView struct {
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	Period        string
	Status        string

	PropertyName string
	RoomNumber   string
	TenantName   string
	TenantPhone  string

	Lines        []receiptLine
	Total        string
	TotalInWords string
	Notes        string

	Colors ColorSettings
}

func buildView(inv invoiceModel.RentalInvoiceModel, info ReceiptInfo) receiptView {
	lines := []receiptLine{
		{Label: "Tiền phòng", Amount: format.VND(inv.InvoiceRentAmount)},
	}

	elecDetail := ""
	if inv.ElectricityCalcType == constants.CalcMeter {
		elecDetail = fmt.Sprintf("%d → %d (%s/kWh)",
			inv.ElectricityPreviousReading, inv.ElectricityCurrentReading, format.GroupDigits(inv.ElectricityUnitPrice))
	}
	lines = append(lines, receiptLine{Label: "Tiền điện", Detail: elecDetail, Amount: format.VND(inv.ElectricityAmount)})

	waterDetail := ""
	if inv.WaterCalcType == constants.CalcMeter {
		waterDetail = fmt.Sprintf("%d → %d (%s/m³)",
			inv.WaterPreviousReading, inv.WaterCurrentReading, format.GroupDigits(inv.WaterUnitPrice))
	}
	lines = append(lines, receiptLine{Label: "Tiền nước", Detail: waterDetail, Amount: format.VND(inv.WaterAmount)})

	if inv.InternetAmount > 0 {
		detail := ""
		if inv.InternetNote != nil {
			detail = *inv.InternetNote
		}
		lines = append(lines, receiptLine{Label: "Internet", Detail: detail, Amount: format.VND(inv.InternetAmount)})
	}
	if inv.TrashAmount > 0 {
		detail := ""
		if inv.TrashNote != nil {
			detail = *inv.TrashNote
		}
		lines = append(lines, receiptLine{Label: "Rác", Detail: detail, Amount: format.VND(inv.TrashAmount)})
	}
	for _, f := range ParseFees(inv.InvoiceOtherFees) {
		detail := ""
		if f.Note != nil {
			detail = *f.Note
		}
		lines = append(lines, receiptLine{Label: f.Name, Detail: detail, Amount: format.VND(f.Amount)})
	}

	notes := ""
	if inv.InvoiceNotes != nil {
		notes = *inv.InvoiceNotes
	}

	return receiptView{
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     format.FormatDate(inv.InvoiceIssueDate),
		DueDate:       format.FormatDate(inv.InvoiceDueDate),
		Period:        format.FormatPeriod(inv.InvoicePeriodStart, inv.InvoicePeriodEnd),
		Status:        DeriveDisplayStatus(inv, time.Now()),

		PropertyName: info.PropertyName,
		RoomNumber:   info.RoomNumber,
		TenantName:   info.TenantName,
		TenantPhone:  info.TenantPhone,

		Lines:        lines,
		Total:        format.VND(inv.InvoiceTotalAmount),
		TotalInWords: format.AmountInWords(inv.InvoiceTotalAmount),
		Notes:        notes,

		Colors: colorsOf(inv),
	}
}

var simpleTmpl = template.Must(template.New("simple").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body{font-family:Arial,sans-serif;width:480px;margin:0 auto;padding:16px;font-size:14px}
h2{text-align:center;margin:4px 0}
table{width:100%;border-collapse:collapse}
td{padding:4px 0;border-bottom:1px dashed #ccc}
td.amt{text-align:right;white-space:nowrap}
.total td{font-weight:bold;border-bottom:none;padding-top:8px}
.meta{color:#555;font-size:12px}
</style></head><body>
<h2>BIÊN NHẬN TIỀN PHÒNG</h2>
<p class="meta">Số: {{.InvoiceNumber}} · Ngày lập: {{.IssueDate}}</p>
<p>{{.PropertyName}} - Phòng {{.RoomNumber}}<br>Người thuê: {{.TenantName}}<br>Kỳ: {{.Period}}</p>
<table>
{{range .Lines}}<tr><td>{{.Label}}{{if .Detail}} <span class="meta">({{.Detail}})</span>{{end}}</td><td class="amt">{{.Amount}}</td></tr>
{{end}}<tr class="total"><td>TỔNG CỘNG</td><td class="amt">{{.Total}}</td></tr>
</table>
<p class="meta">Bằng chữ: {{.TotalInWords}}</p>
{{if .Notes}}<p class="meta">Ghi chú: {{.Notes}}</p>{{end}}
</body></html>`))

var professionalTmpl = template.Must(template.New("professional").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body{font-family:'Segoe UI',Arial,sans-serif;width:560px;margin:0 auto;font-size:14px;color:#222}
.header{background:{{.Colors.HeaderBg}};color:{{.Colors.HeaderText}};padding:20px;text-align:center}
.header h1{margin:0;font-size:20px;letter-spacing:1px}
.header p{margin:4px 0 0;font-size:12px;opacity:.85}
.body{padding:20px}
.parties{display:flex;justify-content:space-between;font-size:13px;margin-bottom:16px}
table{width:100%;border-collapse:collapse}
th{background:#f7f7f7;text-align:left;padding:8px;font-size:12px;text-transform:uppercase}
th.amt,td.amt{text-align:right;white-space:nowrap}
td{padding:8px;border-bottom:1px solid #eee}
.detail{color:#777;font-size:12px}
.total{background:{{.Colors.TotalBg}};color:{{.Colors.TotalText}};padding:12px 20px;display:flex;justify-content:space-between;font-size:16px;font-weight:bold;margin-top:12px}
.words{font-size:12px;color:#555;font-style:italic;margin-top:6px}
.footer{padding:12px 20px;font-size:11px;color:#999;text-align:center}
</style></head><body>
<div class="header"><h1>HOÁ ĐƠN TIỀN PHÒNG</h1><p>{{.InvoiceNumber}} · Kỳ {{.Period}}</p></div>
<div class="body">
<div class="parties">
<div><strong>{{.PropertyName}}</strong><br>Phòng {{.RoomNumber}}</div>
<div style="text-align:right"><strong>{{.TenantName}}</strong>{{if .TenantPhone}}<br>{{.TenantPhone}}{{end}}<br>Hạn thanh toán: {{.DueDate}}</div>
</div>
<table>
<tr><th>Khoản mục</th><th class="amt">Thành tiền</th></tr>
{{range .Lines}}<tr><td>{{.Label}}{{if .Detail}}<div class="detail">{{.Detail}}</div>{{end}}</td><td class="amt">{{.Amount}}</td></tr>
{{end}}</table>
<div class="total"><span>TỔNG CỘNG</span><span>{{.Total}}</span></div>
<div class="words">Bằng chữ: {{.TotalInWords}}</div>
{{if .Notes}}<p class="detail">Ghi chú: {{.Notes}}</p>{{end}}
</div>
<div class="footer">Ngày lập: {{.IssueDate}}</div>
</body></html>`))

type simpleRenderer struct{}

func (simpleRenderer) Render(inv invoiceModel.RentalInvoiceModel, info ReceiptInfo) (string, error) {
	var buf bytes.Buffer
	if err := simpleTmpl.Execute(&buf, buildView(inv, info)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type professionalRenderer struct{}

func (professionalRenderer) Render(inv invoiceModel.RentalInvoiceModel, info ReceiptInfo) (string, error) {
	var buf bytes.Buffer
	if err := professionalTmpl.Execute(&buf, buildView(inv, info)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
