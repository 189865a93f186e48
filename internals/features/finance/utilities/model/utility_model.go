package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UtilityModel là tài khoản dịch vụ phía chủ trọ (điện lực, cấp nước,
// internet...) gắn với một dãy trọ, tách biệt với hoá đơn thu của người thuê.
type UtilityModel struct {
	UtilityID         uuid.UUID  `json:"utility_id" gorm:"type:uuid;primaryKey;column:utility_id"`
	UtilityPropertyID uuid.UUID  `json:"utility_property_id" gorm:"type:uuid;not null;index;column:utility_property_id"`
	UtilityRoomID     *uuid.UUID `json:"utility_room_id,omitempty" gorm:"type:uuid;column:utility_room_id"`

	UtilityName         string  `json:"utility_name" gorm:"type:varchar(100);not null;column:utility_name"`
	UtilityType         string  `json:"utility_type" gorm:"type:varchar(30);not null;column:utility_type"` // electricity, water, internet, trash, other
	UtilityProvider     *string `json:"utility_provider,omitempty" gorm:"type:varchar(100);column:utility_provider"`
	UtilityCustomerCode *string `json:"utility_customer_code,omitempty" gorm:"type:varchar(50);column:utility_customer_code"`

	UtilityDueDay int `json:"utility_due_day" gorm:"not null;default:1;column:utility_due_day"` // 1–31

	// Số ngày trước hạn cần nhắc, vd {7,3,1}.
	UtilityReminderDays pq.Int64Array `json:"utility_reminder_days" gorm:"type:integer[];column:utility_reminder_days"`

	UtilityNotes *string `json:"utility_notes,omitempty" gorm:"type:text;column:utility_notes"`

	UtilityCreatedAt time.Time      `json:"utility_created_at" gorm:"column:utility_created_at;autoCreateTime"`
	UtilityUpdatedAt time.Time      `json:"utility_updated_at" gorm:"column:utility_updated_at;autoUpdateTime"`
	UtilityDeletedAt gorm.DeletedAt `json:"-" gorm:"column:utility_deleted_at;index"`
}

func (UtilityModel) TableName() string { return "utilities" }

func (m *UtilityModel) BeforeCreate(tx *gorm.DB) error {
	if m.UtilityID == uuid.Nil {
		m.UtilityID = uuid.New()
	}
	return nil
}
