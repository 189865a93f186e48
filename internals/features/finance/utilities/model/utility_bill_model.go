package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UtilityBillModel là một kỳ thanh toán của tài khoản dịch vụ.
type UtilityBillModel struct {
	BillID        uuid.UUID `json:"bill_id" gorm:"type:uuid;primaryKey;column:bill_id"`
	BillUtilityID uuid.UUID `json:"bill_utility_id" gorm:"type:uuid;not null;index;column:bill_utility_id"`

	BillPeriodStart time.Time `json:"bill_period_start" gorm:"type:date;not null;column:bill_period_start"`
	BillPeriodEnd   time.Time `json:"bill_period_end" gorm:"type:date;not null;column:bill_period_end"`

	BillPreviousReading *int64 `json:"bill_previous_reading,omitempty" gorm:"column:bill_previous_reading"`
	BillCurrentReading  *int64 `json:"bill_current_reading,omitempty" gorm:"column:bill_current_reading"`

	BillAmount int64  `json:"bill_amount" gorm:"not null;default:0;column:bill_amount"`
	BillStatus string `json:"bill_status" gorm:"type:varchar(20);not null;default:'unpaid';index;column:bill_status"` // unpaid, paid

	BillPaidAt *time.Time `json:"bill_paid_at,omitempty" gorm:"column:bill_paid_at"`

	BillCreatedAt time.Time      `json:"bill_created_at" gorm:"column:bill_created_at;autoCreateTime"`
	BillUpdatedAt time.Time      `json:"bill_updated_at" gorm:"column:bill_updated_at;autoUpdateTime"`
	BillDeletedAt gorm.DeletedAt `json:"-" gorm:"column:bill_deleted_at;index"`
}

func (UtilityBillModel) TableName() string { return "utility_bills" }

func (m *UtilityBillModel) BeforeCreate(tx *gorm.DB) error {
	if m.BillID == uuid.Nil {
		m.BillID = uuid.New()
	}
	return nil
}
