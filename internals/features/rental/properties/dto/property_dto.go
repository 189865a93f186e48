package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"nhatro_backend/internals/features/rental/properties/model"
)

type PropertyCreateDTO struct {
	PropertyName     string  `json:"property_name" validate:"required,min=2,max=150"`
	PropertyAddress  string  `json:"property_address" validate:"required"`
	PropertyCity     string  `json:"property_city" validate:"required,max=100"`
	PropertyDistrict *string `json:"property_district,omitempty" validate:"omitempty,max=100"`
	PropertyStatus   string  `json:"property_status" validate:"omitempty,oneof=active inactive"`
}

type PropertyUpdateDTO struct {
	PropertyName     *string `json:"property_name,omitempty" validate:"omitempty,min=2,max=150"`
	PropertyAddress  *string `json:"property_address,omitempty"`
	PropertyCity     *string `json:"property_city,omitempty" validate:"omitempty,max=100"`
	PropertyDistrict *string `json:"property_district,omitempty" validate:"omitempty,max=100"`
	PropertyStatus   *string `json:"property_status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// OccupancyStats là giá trị dẫn xuất từ bảng rooms, tính lại mỗi lần đọc.
type OccupancyStats struct {
	TotalRooms     int     `json:"total_rooms"`
	OccupiedRooms  int     `json:"occupied_rooms"`
	AvailableRooms int     `json:"available_rooms"`
	OccupancyRate  float64 `json:"occupancy_rate"` // phần trăm, 0..100
}

type PropertyResponse struct {
	PropertyID       uuid.UUID `json:"property_id"`
	PropertyName     string    `json:"property_name"`
	PropertyAddress  string    `json:"property_address"`
	PropertyCity     string    `json:"property_city"`
	PropertyDistrict *string   `json:"property_district,omitempty"`
	PropertyStatus   string    `json:"property_status"`

	Occupancy OccupancyStats `json:"occupancy"`

	PropertyCreatedAt time.Time `json:"property_created_at"`
	PropertyUpdatedAt time.Time `json:"property_updated_at"`
}

func ToPropertyResponse(m model.PropertyModel, stats OccupancyStats) PropertyResponse {
	return PropertyResponse{
		PropertyID:       m.PropertyID,
		PropertyName:     m.PropertyName,
		PropertyAddress:  m.PropertyAddress,
		PropertyCity:     m.PropertyCity,
		PropertyDistrict: m.PropertyDistrict,
		PropertyStatus:   m.PropertyStatus,
		Occupancy:        stats,

		PropertyCreatedAt: m.PropertyCreatedAt,
		PropertyUpdatedAt: m.PropertyUpdatedAt,
	}
}

func (d PropertyCreateDTO) ToModel(ownerID uuid.UUID) model.PropertyModel {
	return model.PropertyModel{
		PropertyOwnerID:  ownerID,
		PropertyName:     strings.TrimSpace(d.PropertyName),
		PropertyAddress:  strings.TrimSpace(d.PropertyAddress),
		PropertyCity:     strings.TrimSpace(d.PropertyCity),
		PropertyDistrict: d.PropertyDistrict,
		PropertyStatus:   d.PropertyStatus,
	}
}

func ApplyPropertyUpdate(m *model.PropertyModel, d PropertyUpdateDTO) {
	if d.PropertyName != nil {
		m.PropertyName = strings.TrimSpace(*d.PropertyName)
	}
	if d.PropertyAddress != nil {
		m.PropertyAddress = strings.TrimSpace(*d.PropertyAddress)
	}
	if d.PropertyCity != nil {
		m.PropertyCity = strings.TrimSpace(*d.PropertyCity)
	}
	if d.PropertyDistrict != nil {
		m.PropertyDistrict = d.PropertyDistrict
	}
	if d.PropertyStatus != nil {
		m.PropertyStatus = *d.PropertyStatus
	}
}
