package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"nhatro_backend/internals/features/rental/rooms/model"
)

type RoomCreateDTO struct {
	RoomPropertyID uuid.UUID `json:"room_property_id" validate:"required"`
	RoomNumber     string    `json:"room_number" validate:"required,max=20"`
	RoomFloor      *int      `json:"room_floor,omitempty"`
	RoomAreaSqm    *float64  `json:"room_area_sqm,omitempty" validate:"omitempty,gt=0"`

	RoomRentAmount    int64  `json:"room_rent_amount" validate:"required,gt=0"`
	RoomDepositAmount *int64 `json:"room_deposit_amount,omitempty" validate:"omitempty,gte=0"`

	RoomStatus      string   `json:"room_status" validate:"omitempty,oneof=available maintenance"`
	RoomUtilities   []string `json:"room_utilities,omitempty"`
	RoomDescription *string  `json:"room_description,omitempty"`
}

type RoomUpdateDTO struct {
	RoomNumber  *string  `json:"room_number,omitempty" validate:"omitempty,max=20"`
	RoomFloor   *int     `json:"room_floor,omitempty"`
	RoomAreaSqm *float64 `json:"room_area_sqm,omitempty" validate:"omitempty,gt=0"`

	RoomRentAmount    *int64 `json:"room_rent_amount,omitempty" validate:"omitempty,gt=0"`
	RoomDepositAmount *int64 `json:"room_deposit_amount,omitempty" validate:"omitempty,gte=0"`

	// occupied không set tay được: do máy trạng thái hợp đồng quản
	RoomStatus      *string  `json:"room_status,omitempty" validate:"omitempty,oneof=available maintenance"`
	RoomUtilities   []string `json:"room_utilities,omitempty"`
	RoomDescription *string  `json:"room_description,omitempty"`
}

type RoomResponse struct {
	RoomID         uuid.UUID `json:"room_id"`
	RoomPropertyID uuid.UUID `json:"room_property_id"`
	RoomNumber     string    `json:"room_number"`
	RoomFloor      *int      `json:"room_floor,omitempty"`
	RoomAreaSqm    *float64  `json:"room_area_sqm,omitempty"`

	RoomRentAmount    int64  `json:"room_rent_amount"`
	RoomDepositAmount *int64 `json:"room_deposit_amount,omitempty"`

	RoomStatus      string         `json:"room_status"`
	RoomUtilities   datatypes.JSON `json:"room_utilities"`
	RoomDescription *string        `json:"room_description,omitempty"`

	RoomCreatedAt time.Time `json:"room_created_at"`
	RoomUpdatedAt time.Time `json:"room_updated_at"`
}

func ToRoomResponse(m model.RoomModel) RoomResponse {
	return RoomResponse{
		RoomID:         m.RoomID,
		RoomPropertyID: m.RoomPropertyID,
		RoomNumber:     m.RoomNumber,
		RoomFloor:      m.RoomFloor,
		RoomAreaSqm:    m.RoomAreaSqm,

		RoomRentAmount:    m.RoomRentAmount,
		RoomDepositAmount: m.RoomDepositAmount,

		RoomStatus:      m.RoomStatus,
		RoomUtilities:   m.RoomUtilities,
		RoomDescription: m.RoomDescription,

		RoomCreatedAt: m.RoomCreatedAt,
		RoomUpdatedAt: m.RoomUpdatedAt,
	}
}

func ToRoomResponses(list []model.RoomModel) []RoomResponse {
	out := make([]RoomResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToRoomResponse(v))
	}
	return out
}

// PropertyRoomsGroup dùng cho UI chọn dãy trọ → phòng.
type PropertyRoomsGroup struct {
	PropertyID   uuid.UUID      `json:"property_id"`
	PropertyName string         `json:"property_name"`
	Rooms        []RoomResponse `json:"rooms"`
}

// OccupiedRoomRow: phòng đang thuê kèm dãy trọ + hợp đồng active + người thuê.
type OccupiedRoomRow struct {
	RoomID         uuid.UUID `json:"room_id"`
	RoomNumber     string    `json:"room_number"`
	RoomRentAmount int64     `json:"room_rent_amount"`

	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`

	ContractID          uuid.UUID `json:"contract_id"`
	ContractMonthlyRent int64     `json:"contract_monthly_rent"`
	ContractStartDate   time.Time `json:"contract_start_date"`

	TenantID       uuid.UUID `json:"tenant_id"`
	TenantFullName string    `json:"tenant_full_name"`
	TenantPhone    *string   `json:"tenant_phone,omitempty"`
}

func (d RoomCreateDTO) ToModel() model.RoomModel {
	return model.RoomModel{
		RoomPropertyID:    d.RoomPropertyID,
		RoomNumber:        strings.TrimSpace(d.RoomNumber),
		RoomFloor:         d.RoomFloor,
		RoomAreaSqm:       d.RoomAreaSqm,
		RoomRentAmount:    d.RoomRentAmount,
		RoomDepositAmount: d.RoomDepositAmount,
		RoomStatus:        d.RoomStatus,
		RoomUtilities:     utilitiesJSON(d.RoomUtilities),
		RoomDescription:   d.RoomDescription,
	}
}

func ApplyRoomUpdate(m *model.RoomModel, d RoomUpdateDTO) {
	if d.RoomNumber != nil {
		m.RoomNumber = strings.TrimSpace(*d.RoomNumber)
	}
	if d.RoomFloor != nil {
		m.RoomFloor = d.RoomFloor
	}
	if d.RoomAreaSqm != nil {
		m.RoomAreaSqm = d.RoomAreaSqm
	}
	if d.RoomRentAmount != nil {
		m.RoomRentAmount = *d.RoomRentAmount
	}
	if d.RoomDepositAmount != nil {
		m.RoomDepositAmount = d.RoomDepositAmount
	}
	if d.RoomStatus != nil {
		m.RoomStatus = *d.RoomStatus
	}
	if d.RoomUtilities != nil {
		m.RoomUtilities = utilitiesJSON(d.RoomUtilities)
	}
	if d.RoomDescription != nil {
		m.RoomDescription = d.RoomDescription
	}
}

func utilitiesJSON(list []string) datatypes.JSON {
	if len(list) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	b, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
