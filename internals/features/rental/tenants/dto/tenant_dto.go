package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "nhatro_backend/internals/features/rental/tenants/model"
)

type TenantCreateDTO struct {
	TenantFullName  string     `json:"tenant_full_name" validate:"required,min=2,max=100"`
	TenantPhone     *string    `json:"tenant_phone" validate:"omitempty,max=20"`
	TenantEmail     *string    `json:"tenant_email" validate:"omitempty,email,max=255"`
	TenantIDNumber  *string    `json:"tenant_id_number" validate:"omitempty,max=20"`
	TenantBirthDate *time.Time `json:"tenant_birth_date"`

	TenantAddress    *string `json:"tenant_address"`
	TenantOccupation *string `json:"tenant_occupation" validate:"omitempty,max=100"`

	TenantEmergencyContact *string `json:"tenant_emergency_contact" validate:"omitempty,max=100"`
	TenantEmergencyPhone   *string `json:"tenant_emergency_phone" validate:"omitempty,max=20"`
	TenantNotes            *string `json:"tenant_notes"`
}

type TenantUpdateDTO struct {
	TenantFullName  *string    `json:"tenant_full_name" validate:"omitempty,min=2,max=100"`
	TenantPhone     *string    `json:"tenant_phone" validate:"omitempty,max=20"`
	TenantEmail     *string    `json:"tenant_email" validate:"omitempty,email,max=255"`
	TenantIDNumber  *string    `json:"tenant_id_number" validate:"omitempty,max=20"`
	TenantBirthDate *time.Time `json:"tenant_birth_date"`

	TenantAddress    *string `json:"tenant_address"`
	TenantOccupation *string `json:"tenant_occupation" validate:"omitempty,max=100"`

	TenantEmergencyContact *string `json:"tenant_emergency_contact" validate:"omitempty,max=100"`
	TenantEmergencyPhone   *string `json:"tenant_emergency_phone" validate:"omitempty,max=20"`
	TenantNotes            *string `json:"tenant_notes"`
}

type TenantResponse struct {
	TenantID        uuid.UUID  `json:"tenant_id"`
	TenantFullName  string     `json:"tenant_full_name"`
	TenantPhone     *string    `json:"tenant_phone,omitempty"`
	TenantEmail     *string    `json:"tenant_email,omitempty"`
	TenantIDNumber  *string    `json:"tenant_id_number,omitempty"`
	TenantBirthDate *time.Time `json:"tenant_birth_date,omitempty"`

	TenantAddress    *string `json:"tenant_address,omitempty"`
	TenantOccupation *string `json:"tenant_occupation,omitempty"`

	TenantEmergencyContact *string `json:"tenant_emergency_contact,omitempty"`
	TenantEmergencyPhone   *string `json:"tenant_emergency_phone,omitempty"`
	TenantNotes            *string `json:"tenant_notes,omitempty"`

	TenantCreatedAt time.Time `json:"tenant_created_at"`
	TenantUpdatedAt time.Time `json:"tenant_updated_at"`
}

// TenantWithStay: người thuê kèm chỗ ở hiện tại (nếu đang có hợp đồng active).
type TenantWithStay struct {
	TenantResponse

	ContractID     *uuid.UUID `json:"contract_id,omitempty"`
	ContractStatus *string    `json:"contract_status,omitempty"`
	RoomID         *uuid.UUID `json:"room_id,omitempty"`
	RoomNumber     *string    `json:"room_number,omitempty"`
	PropertyID     *uuid.UUID `json:"property_id,omitempty"`
	PropertyName   *string    `json:"property_name,omitempty"`
}

func ToTenantResponse(m model.TenantModel) TenantResponse {
	return TenantResponse{
		TenantID:        m.TenantID,
		TenantFullName:  m.TenantFullName,
		TenantPhone:     m.TenantPhone,
		TenantEmail:     m.TenantEmail,
		TenantIDNumber:  m.TenantIDNumber,
		TenantBirthDate: m.TenantBirthDate,

		TenantAddress:    m.TenantAddress,
		TenantOccupation: m.TenantOccupation,

		TenantEmergencyContact: m.TenantEmergencyContact,
		TenantEmergencyPhone:   m.TenantEmergencyPhone,
		TenantNotes:            m.TenantNotes,

		TenantCreatedAt: m.TenantCreatedAt,
		TenantUpdatedAt: m.TenantUpdatedAt,
	}
}

func (d TenantCreateDTO) ToModel() model.TenantModel {
	return model.TenantModel{
		TenantFullName:  strings.TrimSpace(d.TenantFullName),
		TenantPhone:     d.TenantPhone,
		TenantEmail:     d.TenantEmail,
		TenantIDNumber:  d.TenantIDNumber,
		TenantBirthDate: d.TenantBirthDate,

		TenantAddress:    d.TenantAddress,
		TenantOccupation: d.TenantOccupation,

		TenantEmergencyContact: d.TenantEmergencyContact,
		TenantEmergencyPhone:   d.TenantEmergencyPhone,
		TenantNotes:            d.TenantNotes,
	}
}

func ApplyTenantUpdate(m *model.TenantModel, d TenantUpdateDTO) {
	if d.TenantFullName != nil {
		m.TenantFullName = strings.TrimSpace(*d.TenantFullName)
	}
	if d.TenantPhone != nil {
		m.TenantPhone = d.TenantPhone
	}
	if d.TenantEmail != nil {
		m.TenantEmail = d.TenantEmail
	}
	if d.TenantIDNumber != nil {
		m.TenantIDNumber = d.TenantIDNumber
	}
	if d.TenantBirthDate != nil {
		m.TenantBirthDate = d.TenantBirthDate
	}
	if d.TenantAddress != nil {
		m.TenantAddress = d.TenantAddress
	}
	if d.TenantOccupation != nil {
		m.TenantOccupation = d.TenantOccupation
	}
	if d.TenantEmergencyContact != nil {
		m.TenantEmergencyContact = d.TenantEmergencyContact
	}
	if d.TenantEmergencyPhone != nil {
		m.TenantEmergencyPhone = d.TenantEmergencyPhone
	}
	if d.TenantNotes != nil {
		m.TenantNotes = d.TenantNotes
	}
}
