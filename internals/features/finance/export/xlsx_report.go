package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"nhatro_backend/internals/helpers/format"
)

// InvoiceReportRow là một dòng trong báo cáo XLSX, đã join sẵn
// tên dãy trọ / phòng / người thuê.
type InvoiceReportRow struct {
	InvoiceNumber string
	PropertyName  string
	RoomNumber    string
	TenantName    string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	DueDate       time.Time
	Status        string
	TotalAmount   int64
}

// BuildInvoiceReport xuất danh sách hoá đơn ra file XLSX cho chủ trọ
// đối soát cuối tháng.
func BuildInvoiceReport(rows []InvoiceReportRow, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Hoá đơn"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Số HĐ", "Dãy trọ", "Phòng", "Người thuê", "Kỳ", "Hạn thanh toán", "Trạng thái", "Tổng tiền"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	var grandTotal int64
	for i, r := range rows {
		rowNum := i + 2
		set := func(col int, v interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			f.SetCellValue(sheet, cell, v)
		}
		set(1, r.InvoiceNumber)
		set(2, r.PropertyName)
		set(3, r.RoomNumber)
		set(4, r.TenantName)
		set(5, format.FormatPeriod(r.PeriodStart, r.PeriodEnd))
		set(6, format.FormatDate(r.DueDate))
		set(7, statusLabel(r.Status))
		set(8, r.TotalAmount)
		grandTotal += r.TotalAmount
	}

	totalRow := len(rows) + 2
	labelCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(8, totalRow)
	f.SetCellValue(sheet, labelCell, "TỔNG CỘNG")
	f.SetCellValue(sheet, totalCell, grandTotal)

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "D", 22)
	f.SetColWidth(sheet, "E", "F", 24)
	f.SetColWidth(sheet, "G", "H", 14)

	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow+2),
		"Xuất ngày "+format.FormatDate(now))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func statusLabel(status string) string {
	switch status {
	case "draft":
		return "Nháp"
	case "sent":
		return "Đã gửi"
	case "paid":
		return "Đã trả"
	case "overdue":
		return "Quá hạn"
	case "cancelled":
		return "Đã huỷ"
	}
	return status
}
