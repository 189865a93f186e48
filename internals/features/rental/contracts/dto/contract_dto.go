package dto

import (
	"time"

	"github.com/google/uuid"

	"nhatro_backend/internals/features/rental/contracts/model"
)

type AssignTenantDTO struct {
	RoomID      uuid.UUID `json:"room_id" validate:"required"`
	TenantID    uuid.UUID `json:"tenant_id" validate:"required"`
	MonthlyRent int64     `json:"monthly_rent" validate:"required,gt=0"`
}

type UnassignTenantDTO struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`
}

type TransferTenantDTO struct {
	TenantID   uuid.UUID `json:"tenant_id" validate:"required"`
	FromRoomID uuid.UUID `json:"from_room_id" validate:"required"`
	ToRoomID   uuid.UUID `json:"to_room_id" validate:"required"`
	NewRent    int64     `json:"new_rent" validate:"required,gt=0"`
}

type CreateContractDTO struct {
	RoomID        uuid.UUID  `json:"room_id" validate:"required"`
	TenantID      uuid.UUID  `json:"tenant_id" validate:"required"`
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	MonthlyRent   int64      `json:"monthly_rent" validate:"required,gt=0"`
	DepositAmount *int64     `json:"deposit_amount,omitempty" validate:"omitempty,gte=0"`
}

type ContractResponse struct {
	ContractID       uuid.UUID `json:"contract_id"`
	ContractRoomID   uuid.UUID `json:"contract_room_id"`
	ContractTenantID uuid.UUID `json:"contract_tenant_id"`

	ContractStartDate time.Time  `json:"contract_start_date"`
	ContractEndDate   *time.Time `json:"contract_end_date,omitempty"`

	ContractMonthlyRent   int64  `json:"contract_monthly_rent"`
	ContractDepositAmount *int64 `json:"contract_deposit_amount,omitempty"`
	ContractRenewalCount  int    `json:"contract_renewal_count"`

	ContractStatus        string `json:"contract_status"`
	ContractDisplayStatus string `json:"contract_display_status"`

	ContractCreatedAt time.Time `json:"contract_created_at"`
	ContractUpdatedAt time.Time `json:"contract_updated_at"`
}

func ToContractResponse(m model.RentalContractModel) ContractResponse {
	return ContractResponse{
		ContractID:       m.ContractID,
		ContractRoomID:   m.ContractRoomID,
		ContractTenantID: m.ContractTenantID,

		ContractStartDate: m.ContractStartDate,
		ContractEndDate:   m.ContractEndDate,

		ContractMonthlyRent:   m.ContractMonthlyRent,
		ContractDepositAmount: m.ContractDepositAmount,
		ContractRenewalCount:  m.ContractRenewalCount,

		ContractStatus:        m.ContractStatus,
		ContractDisplayStatus: m.DisplayStatus(time.Now()),

		ContractCreatedAt: m.ContractCreatedAt,
		ContractUpdatedAt: m.ContractUpdatedAt,
	}
}

func ToContractResponses(list []model.RentalContractModel) []ContractResponse {
	out := make([]ContractResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToContractResponse(v))
	}
	return out
}
