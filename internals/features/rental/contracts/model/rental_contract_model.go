package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
)

// RentalContractModel đại diện bảng rental_contracts: entity join/lifecycle
// giữa room và tenant. Index unique partial (xem databases/migrate.go) đảm bảo
// mỗi phòng và mỗi tenant chỉ có tối đa một hợp đồng active.
type RentalContractModel struct {
	ContractID       uuid.UUID `json:"contract_id" gorm:"type:uuid;primaryKey;column:contract_id"`
	ContractRoomID   uuid.UUID `json:"contract_room_id" gorm:"type:uuid;not null;index;column:contract_room_id"`
	ContractTenantID uuid.UUID `json:"contract_tenant_id" gorm:"type:uuid;not null;index;column:contract_tenant_id"`

	ContractStartDate time.Time  `json:"contract_start_date" gorm:"type:date;not null;column:contract_start_date"`
	ContractEndDate   *time.Time `json:"contract_end_date,omitempty" gorm:"type:date;column:contract_end_date"`

	ContractMonthlyRent   int64  `json:"contract_monthly_rent" gorm:"not null;column:contract_monthly_rent"` // VND
	ContractDepositAmount *int64 `json:"contract_deposit_amount,omitempty" gorm:"column:contract_deposit_amount"`
	ContractRenewalCount  int    `json:"contract_renewal_count" gorm:"not null;default:0;column:contract_renewal_count"`

	ContractStatus string `json:"contract_status" gorm:"type:varchar(20);not null;default:'active';index;column:contract_status"`

	ContractCreatedAt time.Time      `json:"contract_created_at" gorm:"column:contract_created_at;autoCreateTime"`
	ContractUpdatedAt time.Time      `json:"contract_updated_at" gorm:"column:contract_updated_at;autoUpdateTime"`
	ContractDeletedAt gorm.DeletedAt `json:"-" gorm:"column:contract_deleted_at;index"`
}

func (RentalContractModel) TableName() string { return "rental_contracts" }

func (m *RentalContractModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContractID == uuid.Nil {
		m.ContractID = uuid.New()
	}
	if m.ContractRoomID == uuid.Nil || m.ContractTenantID == uuid.Nil {
		return fmt.Errorf("contract_room_id and contract_tenant_id are required")
	}
	if m.ContractStatus == "" {
		m.ContractStatus = constants.ContractActive
	}
	return nil
}

// DisplayStatus trả về trạng thái để hiển thị: hợp đồng active đã quá
// end_date được coi là expired khi render, record trong DB không đổi.
func (m *RentalContractModel) DisplayStatus(now time.Time) string {
	if m.ContractStatus == constants.ContractActive &&
		m.ContractEndDate != nil && m.ContractEndDate.Before(now) {
		return constants.ContractExpired
	}
	return m.ContractStatus
}
