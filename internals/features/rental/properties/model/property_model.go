package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
)

// PropertyModel đại diện bảng properties (dãy trọ / toà nhà).
// Số phòng trống / đã thuê là giá trị dẫn xuất, tính từ bảng rooms khi đọc,
// không lưu ở đây.
type PropertyModel struct {
	PropertyID       uuid.UUID `json:"property_id" gorm:"type:uuid;primaryKey;column:property_id"`
	PropertyOwnerID  uuid.UUID `json:"property_owner_id" gorm:"type:uuid;not null;index;column:property_owner_id"`
	PropertyName     string    `json:"property_name" gorm:"type:varchar(150);not null;column:property_name"`
	PropertyAddress  string    `json:"property_address" gorm:"type:text;not null;column:property_address"`
	PropertyCity     string    `json:"property_city" gorm:"type:varchar(100);not null;index;column:property_city"`
	PropertyDistrict *string   `json:"property_district,omitempty" gorm:"type:varchar(100);column:property_district"`
	PropertyStatus   string    `json:"property_status" gorm:"type:varchar(20);not null;default:'active';column:property_status"`

	PropertyCreatedAt time.Time      `json:"property_created_at" gorm:"column:property_created_at;autoCreateTime"`
	PropertyUpdatedAt time.Time      `json:"property_updated_at" gorm:"column:property_updated_at;autoUpdateTime"`
	PropertyDeletedAt gorm.DeletedAt `json:"-" gorm:"column:property_deleted_at;index"`
}

func (PropertyModel) TableName() string { return "properties" }

func (p *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	if p.PropertyStatus == "" {
		p.PropertyStatus = constants.PropertyActive
	}
	return nil
}
