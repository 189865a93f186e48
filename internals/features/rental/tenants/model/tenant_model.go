package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantModel đại diện bảng tenants (người thuê).
// Tenant không gắn trực tiếp với phòng; liên kết qua rental_contracts.
type TenantModel struct {
	TenantID       uuid.UUID  `json:"tenant_id" gorm:"type:uuid;primaryKey;column:tenant_id"`
	TenantFullName string     `json:"tenant_full_name" gorm:"type:varchar(100);not null;column:tenant_full_name"`
	TenantPhone    *string    `json:"tenant_phone,omitempty" gorm:"type:varchar(20);column:tenant_phone"`
	TenantEmail    *string    `json:"tenant_email,omitempty" gorm:"type:varchar(255);column:tenant_email"`
	TenantIDNumber *string    `json:"tenant_id_number,omitempty" gorm:"type:varchar(20);column:tenant_id_number"` // CCCD/CMND
	TenantBirthDate *time.Time `json:"tenant_birth_date,omitempty" gorm:"type:date;column:tenant_birth_date"`

	TenantAddress    *string `json:"tenant_address,omitempty" gorm:"type:text;column:tenant_address"`
	TenantOccupation *string `json:"tenant_occupation,omitempty" gorm:"type:varchar(100);column:tenant_occupation"`

	TenantEmergencyContact *string `json:"tenant_emergency_contact,omitempty" gorm:"type:varchar(100);column:tenant_emergency_contact"`
	TenantEmergencyPhone   *string `json:"tenant_emergency_phone,omitempty" gorm:"type:varchar(20);column:tenant_emergency_phone"`
	TenantNotes            *string `json:"tenant_notes,omitempty" gorm:"type:text;column:tenant_notes"`

	TenantCreatedAt time.Time      `json:"tenant_created_at" gorm:"column:tenant_created_at;autoCreateTime"`
	TenantUpdatedAt time.Time      `json:"tenant_updated_at" gorm:"column:tenant_updated_at;autoUpdateTime"`
	TenantDeletedAt gorm.DeletedAt `json:"-" gorm:"column:tenant_deleted_at;index"`
}

func (TenantModel) TableName() string { return "tenants" }

func (t *TenantModel) BeforeCreate(tx *gorm.DB) error {
	if t.TenantID == uuid.Nil {
		t.TenantID = uuid.New()
	}
	return nil
}
