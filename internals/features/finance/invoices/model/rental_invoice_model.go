package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RentalInvoiceModel đại diện bảng rental_invoices.
// Tham chiếu room/tenant/contract theo id (không FK cứng): hoá đơn phải
// tồn tại được cả khi hợp đồng đã kết thúc.
type RentalInvoiceModel struct {
	InvoiceID         uuid.UUID  `json:"invoice_id" gorm:"type:uuid;primaryKey;column:invoice_id"`
	InvoiceRoomID     uuid.UUID  `json:"invoice_room_id" gorm:"type:uuid;not null;index;column:invoice_room_id"`
	InvoiceTenantID   uuid.UUID  `json:"invoice_tenant_id" gorm:"type:uuid;not null;index;column:invoice_tenant_id"`
	InvoiceContractID *uuid.UUID `json:"invoice_contract_id,omitempty" gorm:"type:uuid;column:invoice_contract_id"`

	InvoiceNumber string `json:"invoice_number" gorm:"type:varchar(30);not null;uniqueIndex;column:invoice_number"`

	InvoicePeriodStart time.Time `json:"invoice_period_start" gorm:"type:date;not null;column:invoice_period_start"`
	InvoicePeriodEnd   time.Time `json:"invoice_period_end" gorm:"type:date;not null;column:invoice_period_end"`
	InvoiceIssueDate   time.Time `json:"invoice_issue_date" gorm:"type:date;not null;column:invoice_issue_date"`
	InvoiceDueDate     time.Time `json:"invoice_due_date" gorm:"type:date;not null;column:invoice_due_date"`

	InvoiceTemplateType string `json:"invoice_template_type" gorm:"type:varchar(20);not null;default:'professional';column:invoice_template_type"`
	InvoiceStatus       string `json:"invoice_status" gorm:"type:varchar(20);not null;default:'draft';index;column:invoice_status"`

	InvoiceRentAmount int64 `json:"invoice_rent_amount" gorm:"not null;default:0;column:invoice_rent_amount"`

	ElectricityCalcType        string  `json:"electricity_calc_type" gorm:"type:varchar(10);not null;default:'meter';column:electricity_calc_type"`
	ElectricityPreviousReading int64   `json:"electricity_previous_reading" gorm:"not null;default:0;column:electricity_previous_reading"`
	ElectricityCurrentReading  int64   `json:"electricity_current_reading" gorm:"not null;default:0;column:electricity_current_reading"`
	ElectricityUnitPrice       int64   `json:"electricity_unit_price" gorm:"not null;default:0;column:electricity_unit_price"`
	ElectricityAmount          int64   `json:"electricity_amount" gorm:"not null;default:0;column:electricity_amount"`
	ElectricityNote            *string `json:"electricity_note,omitempty" gorm:"type:text;column:electricity_note"`

	WaterCalcType        string  `json:"water_calc_type" gorm:"type:varchar(10);not null;default:'meter';column:water_calc_type"`
	WaterPreviousReading int64   `json:"water_previous_reading" gorm:"not null;default:0;column:water_previous_reading"`
	WaterCurrentReading  int64   `json:"water_current_reading" gorm:"not null;default:0;column:water_current_reading"`
	WaterUnitPrice       int64   `json:"water_unit_price" gorm:"not null;default:0;column:water_unit_price"`
	WaterAmount          int64   `json:"water_amount" gorm:"not null;default:0;column:water_amount"`
	WaterNote            *string `json:"water_note,omitempty" gorm:"type:text;column:water_note"`

	InternetAmount int64   `json:"internet_amount" gorm:"not null;default:0;column:internet_amount"`
	InternetNote   *string `json:"internet_note,omitempty" gorm:"type:text;column:internet_note"`
	TrashAmount    int64   `json:"trash_amount" gorm:"not null;default:0;column:trash_amount"`
	TrashNote      *string `json:"trash_note,omitempty" gorm:"type:text;column:trash_note"`

	// Danh sách {name, amount, note} có thứ tự.
	InvoiceOtherFees datatypes.JSON `json:"invoice_other_fees" gorm:"type:jsonb;default:'[]';column:invoice_other_fees"`

	// Màu header/total + tên theme cho mẫu biên nhận.
	InvoiceColorSettings datatypes.JSON `json:"invoice_color_settings,omitempty" gorm:"type:jsonb;column:invoice_color_settings"`

	// Snapshot tại thời điểm lưu, không tính lại từ các cột con khi đọc.
	InvoiceTotalAmount int64 `json:"invoice_total_amount" gorm:"not null;default:0;column:invoice_total_amount"`

	InvoiceNotes  *string `json:"invoice_notes,omitempty" gorm:"type:text;column:invoice_notes"`
	InvoicePdfURL *string `json:"invoice_pdf_url,omitempty" gorm:"type:text;column:invoice_pdf_url"`

	InvoicePaidAt *time.Time `json:"invoice_paid_at,omitempty" gorm:"column:invoice_paid_at"`

	InvoiceCreatedAt time.Time      `json:"invoice_created_at" gorm:"column:invoice_created_at;autoCreateTime"`
	InvoiceUpdatedAt time.Time      `json:"invoice_updated_at" gorm:"column:invoice_updated_at;autoUpdateTime"`
	InvoiceDeletedAt gorm.DeletedAt `json:"-" gorm:"column:invoice_deleted_at;index"`
}

func (RentalInvoiceModel) TableName() string { return "rental_invoices" }

func (m *RentalInvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	return nil
}
