package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
)

// RoomModel đại diện bảng rooms.
// Bất biến: room_status = 'occupied' khi và chỉ khi có hợp đồng active trỏ tới phòng.
type RoomModel struct {
	RoomID         uuid.UUID `json:"room_id" gorm:"type:uuid;primaryKey;column:room_id"`
	RoomPropertyID uuid.UUID `json:"room_property_id" gorm:"type:uuid;not null;index;column:room_property_id"`
	RoomNumber     string    `json:"room_number" gorm:"type:varchar(20);not null;column:room_number"`
	RoomFloor      *int      `json:"room_floor,omitempty" gorm:"column:room_floor"`
	RoomAreaSqm    *float64  `json:"room_area_sqm,omitempty" gorm:"column:room_area_sqm"`

	RoomRentAmount    int64  `json:"room_rent_amount" gorm:"not null;column:room_rent_amount"` // VND
	RoomDepositAmount *int64 `json:"room_deposit_amount,omitempty" gorm:"column:room_deposit_amount"`

	RoomStatus      string         `json:"room_status" gorm:"type:varchar(20);not null;default:'available';index;column:room_status"`
	RoomUtilities   datatypes.JSON `json:"room_utilities" gorm:"not null;default:'[]';column:room_utilities"` // danh sách tiện ích, vd ["wifi","máy lạnh"]
	RoomDescription *string        `json:"room_description,omitempty" gorm:"type:text;column:room_description"`

	RoomCreatedAt time.Time      `json:"room_created_at" gorm:"column:room_created_at;autoCreateTime"`
	RoomUpdatedAt time.Time      `json:"room_updated_at" gorm:"column:room_updated_at;autoUpdateTime"`
	RoomDeletedAt gorm.DeletedAt `json:"-" gorm:"column:room_deleted_at;index"`
}

func (RoomModel) TableName() string { return "rooms" }

func (r *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if r.RoomID == uuid.Nil {
		r.RoomID = uuid.New()
	}
	if r.RoomStatus == "" {
		r.RoomStatus = constants.RoomAvailable
	}
	if len(r.RoomUtilities) == 0 {
		r.RoomUtilities = datatypes.JSON([]byte("[]"))
	}
	return nil
}
