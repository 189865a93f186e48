package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "nhatro_backend/internals/features/finance/utilities/model"
)

type UtilityCreateDTO struct {
	UtilityPropertyID uuid.UUID  `json:"utility_property_id" validate:"required"`
	UtilityRoomID     *uuid.UUID `json:"utility_room_id"`

	UtilityName         string  `json:"utility_name" validate:"required,max=100"`
	UtilityType         string  `json:"utility_type" validate:"required,oneof=electricity water internet trash other"`
	UtilityProvider     *string `json:"utility_provider" validate:"omitempty,max=100"`
	UtilityCustomerCode *string `json:"utility_customer_code" validate:"omitempty,max=50"`

	UtilityDueDay       int     `json:"utility_due_day" validate:"required,min=1,max=31"`
	UtilityReminderDays []int64 `json:"utility_reminder_days" validate:"dive,min=0,max=31"`

	UtilityNotes *string `json:"utility_notes"`
}

type UtilityUpdateDTO struct {
	UtilityName         *string `json:"utility_name" validate:"omitempty,max=100"`
	UtilityType         *string `json:"utility_type" validate:"omitempty,oneof=electricity water internet trash other"`
	UtilityProvider     *string `json:"utility_provider" validate:"omitempty,max=100"`
	UtilityCustomerCode *string `json:"utility_customer_code" validate:"omitempty,max=50"`

	UtilityDueDay       *int     `json:"utility_due_day" validate:"omitempty,min=1,max=31"`
	UtilityReminderDays *[]int64 `json:"utility_reminder_days" validate:"omitempty,dive,min=0,max=31"`

	UtilityNotes *string `json:"utility_notes"`
}

func (d UtilityCreateDTO) ToModel() model.UtilityModel {
	return model.UtilityModel{
		UtilityPropertyID: d.UtilityPropertyID,
		UtilityRoomID:     d.UtilityRoomID,

		UtilityName:         strings.TrimSpace(d.UtilityName),
		UtilityType:         d.UtilityType,
		UtilityProvider:     d.UtilityProvider,
		UtilityCustomerCode: d.UtilityCustomerCode,

		UtilityDueDay:       d.UtilityDueDay,
		UtilityReminderDays: pq.Int64Array(d.UtilityReminderDays),

		UtilityNotes: d.UtilityNotes,
	}
}

func ApplyUtilityUpdate(m *model.UtilityModel, d UtilityUpdateDTO) {
	if d.UtilityName != nil {
		m.UtilityName = strings.TrimSpace(*d.UtilityName)
	}
	if d.UtilityType != nil {
		m.UtilityType = *d.UtilityType
	}
	if d.UtilityProvider != nil {
		m.UtilityProvider = d.UtilityProvider
	}
	if d.UtilityCustomerCode != nil {
		m.UtilityCustomerCode = d.UtilityCustomerCode
	}
	if d.UtilityDueDay != nil {
		m.UtilityDueDay = *d.UtilityDueDay
	}
	if d.UtilityReminderDays != nil {
		m.UtilityReminderDays = pq.Int64Array(*d.UtilityReminderDays)
	}
	if d.UtilityNotes != nil {
		m.UtilityNotes = d.UtilityNotes
	}
}

type UtilityBillCreateDTO struct {
	BillUtilityID uuid.UUID `json:"bill_utility_id" validate:"required"`

	BillPeriodStart time.Time `json:"bill_period_start" validate:"required"`
	BillPeriodEnd   time.Time `json:"bill_period_end" validate:"required"`

	BillPreviousReading *int64 `json:"bill_previous_reading" validate:"omitempty,gte=0"`
	BillCurrentReading  *int64 `json:"bill_current_reading" validate:"omitempty,gte=0"`

	BillAmount int64 `json:"bill_amount" validate:"gte=0"`
}

func (d UtilityBillCreateDTO) ToModel() model.UtilityBillModel {
	return model.UtilityBillModel{
		BillUtilityID: d.BillUtilityID,

		BillPeriodStart: d.BillPeriodStart,
		BillPeriodEnd:   d.BillPeriodEnd,

		BillPreviousReading: d.BillPreviousReading,
		BillCurrentReading:  d.BillCurrentReading,

		BillAmount: d.BillAmount,
	}
}
