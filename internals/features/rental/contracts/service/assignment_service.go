package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	roomModel "nhatro_backend/internals/features/rental/rooms/model"
)

// Lỗi domain: controller map sang HTTP status.
var (
	ErrRoomNotFound     = errors.New("không tìm thấy phòng")
	ErrTenantNotFound   = errors.New("không tìm thấy người thuê")
	ErrRoomOccupied     = errors.New("phòng đã có người thuê")
	ErrRoomMaintenance  = errors.New("phòng đang bảo trì")
	ErrTenantBusy       = errors.New("người thuê đang có hợp đồng khác")
	ErrNoActiveContract = errors.New("phòng không có hợp đồng đang hiệu lực")
)

// AssignmentService là máy trạng thái phòng/hợp đồng. Mọi thao tác gói trong
// một transaction: vừa ghi hợp đồng vừa đổi room_status, không có trạng thái
// trung gian quan sát được. Check trong transaction chỉ là pre-check; chốt
// chặn cuối cùng là unique partial index ở store (hai client đua nhau thì một
// bên nhận lỗi unique).
type AssignmentService struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db, Clock: time.Now}
}

type CreateContractInput struct {
	RoomID        uuid.UUID
	TenantID      uuid.UUID
	StartDate     time.Time
	EndDate       *time.Time
	MonthlyRent   int64
	DepositAmount *int64
}

// AssignTenantToRoom tạo hợp đồng active mới và chuyển phòng sang occupied.
func (s *AssignmentService) AssignTenantToRoom(ctx context.Context, roomID, tenantID uuid.UUID, monthlyRent int64) (contractModel.RentalContractModel, error) {
	return s.CreateContract(ctx, CreateContractInput{
		RoomID:      roomID,
		TenantID:    tenantID,
		StartDate:   s.Clock(),
		MonthlyRent: monthlyRent,
	})
}

// CreateContract là đường đi chung cho assign tenant mới lẫn tenant có sẵn.
// Sau khi thành công: đúng một hợp đồng active cho phòng đó và tenant đó.
func (s *AssignmentService) CreateContract(ctx context.Context, in CreateContractInput) (contractModel.RentalContractModel, error) {
	var out contractModel.RentalContractModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room roomModel.RoomModel
		if err := tx.First(&room, "room_id = ?", in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.RoomStatus == constants.RoomMaintenance {
			return ErrRoomMaintenance
		}

		var n int64
		if err := tx.Model(&contractModel.RentalContractModel{}).
			Where("contract_room_id = ? AND contract_status = ?", in.RoomID, constants.ContractActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrRoomOccupied
		}
		if err := tx.Model(&contractModel.RentalContractModel{}).
			Where("contract_tenant_id = ? AND contract_status = ?", in.TenantID, constants.ContractActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrTenantBusy
		}

		out = contractModel.RentalContractModel{
			ContractRoomID:        in.RoomID,
			ContractTenantID:      in.TenantID,
			ContractStartDate:     in.StartDate,
			ContractEndDate:       in.EndDate,
			ContractMonthlyRent:   in.MonthlyRent,
			ContractDepositAmount: in.DepositAmount,
			ContractStatus:        constants.ContractActive,
		}
		if err := tx.Create(&out).Error; err != nil {
			if IsUniqueViolation(err) {
				// thua cuộc đua với client khác
				return ErrRoomOccupied
			}
			return err
		}

		return tx.Model(&roomModel.RoomModel{}).
			Where("room_id = ?", in.RoomID).
			Update("room_status", constants.RoomOccupied).Error
	})

	return out, err
}

// UnassignTenantFromRoom chấm dứt hợp đồng active của phòng (terminated,
// không phải expired) và trả phòng về available.
func (s *AssignmentService) UnassignTenantFromRoom(ctx context.Context, roomID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.unassignTx(tx, roomID)
	})
}

func (s *AssignmentService) unassignTx(tx *gorm.DB, roomID uuid.UUID) error {
	var contract contractModel.RentalContractModel
	if err := tx.First(&contract,
		"contract_room_id = ? AND contract_status = ?", roomID, constants.ContractActive,
	).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveContract
		}
		return err
	}

	if err := tx.Model(&contract).
		Update("contract_status", constants.ContractTerminated).Error; err != nil {
		return err
	}

	return tx.Model(&roomModel.RoomModel{}).
		Where("room_id = ?", roomID).
		Update("room_status", constants.RoomAvailable).Error
}

// TransferTenant chuyển tenant từ phòng này sang phòng khác trong MỘT
// transaction: không có thời điểm nào tenant có 0 hoặc 2 hợp đồng active.
func (s *AssignmentService) TransferTenant(ctx context.Context, tenantID, fromRoomID, toRoomID uuid.UUID, newRent int64) (contractModel.RentalContractModel, error) {
	var out contractModel.RentalContractModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current contractModel.RentalContractModel
		if err := tx.First(&current,
			"contract_room_id = ? AND contract_tenant_id = ? AND contract_status = ?",
			fromRoomID, tenantID, constants.ContractActive,
		).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveContract
			}
			return err
		}

		if err := s.unassignTx(tx, fromRoomID); err != nil {
			return err
		}

		var room roomModel.RoomModel
		if err := tx.First(&room, "room_id = ?", toRoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.RoomStatus == constants.RoomMaintenance {
			return ErrRoomMaintenance
		}

		var n int64
		if err := tx.Model(&contractModel.RentalContractModel{}).
			Where("contract_room_id = ? AND contract_status = ?", toRoomID, constants.ContractActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrRoomOccupied
		}

		out = contractModel.RentalContractModel{
			ContractRoomID:      toRoomID,
			ContractTenantID:    tenantID,
			ContractStartDate:   s.Clock(),
			ContractMonthlyRent: newRent,
			ContractStatus:      constants.ContractActive,
		}
		if err := tx.Create(&out).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrRoomOccupied
			}
			return err
		}

		return tx.Model(&roomModel.RoomModel{}).
			Where("room_id = ?", toRoomID).
			Update("room_status", constants.RoomOccupied).Error
	})

	return out, err
}

// ActiveContractForRoom trả về hợp đồng active của phòng, ErrNoActiveContract nếu không có.
func (s *AssignmentService) ActiveContractForRoom(ctx context.Context, roomID uuid.UUID) (contractModel.RentalContractModel, error) {
	var contract contractModel.RentalContractModel
	err := s.DB.WithContext(ctx).First(&contract,
		"contract_room_id = ? AND contract_status = ?", roomID, constants.ContractActive,
	).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contract, ErrNoActiveContract
	}
	return contract, err
}

func IsUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}
