package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	dto "nhatro_backend/internals/features/rental/contracts/dto"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	"nhatro_backend/internals/features/rental/contracts/service"
	helper "nhatro_backend/internals/helpers"
)

type ContractController struct {
	DB         *gorm.DB
	Assignment *service.AssignmentService
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{
		DB:         db,
		Assignment: service.NewAssignmentService(db),
	}
}

// domainError map lỗi của máy trạng thái sang HTTP status.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrTenantNotFound),
		errors.Is(err, service.ErrNoActiveContract):
		return helper.JsonError(c, fiber.StatusNotFound, capitalizeVN(err.Error()))
	case errors.Is(err, service.ErrRoomOccupied),
		errors.Is(err, service.ErrRoomMaintenance),
		errors.Is(err, service.ErrTenantBusy):
		return helper.JsonError(c, fiber.StatusConflict, capitalizeVN(err.Error()))
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
}

func capitalizeVN(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	// đủ dùng cho các thông điệp lỗi domain (chữ cái đầu ASCII hoặc đã hoa)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}

// =======================================================
// POST /api/a/contracts/assign
// =======================================================
func (h *ContractController) AssignTenant(c *fiber.Ctx) error {
	var in dto.AssignTenantDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	contract, err := h.Assignment.AssignTenantToRoom(c.UserContext(), in.RoomID, in.TenantID, in.MonthlyRent)
	if err != nil {
		return domainError(c, err)
	}
	return helper.JsonCreated(c, "Đã gán người thuê vào phòng", dto.ToContractResponse(contract))
}

// =======================================================
// POST /api/a/contracts/unassign
// =======================================================
func (h *ContractController) UnassignTenant(c *fiber.Ctx) error {
	var in dto.UnassignTenantDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	if err := h.Assignment.UnassignTenantFromRoom(c.UserContext(), in.RoomID); err != nil {
		return domainError(c, err)
	}
	return helper.JsonOK(c, "Đã trả phòng", fiber.Map{"room_id": in.RoomID})
}

// =======================================================
// POST /api/a/contracts/transfer: chuyển phòng trong một transaction
// =======================================================
func (h *ContractController) TransferTenant(c *fiber.Ctx) error {
	var in dto.TransferTenantDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	contract, err := h.Assignment.TransferTenant(c.UserContext(),
		in.TenantID, in.FromRoomID, in.ToRoomID, in.NewRent)
	if err != nil {
		return domainError(c, err)
	}
	return helper.JsonCreated(c, "Đã chuyển phòng", dto.ToContractResponse(contract))
}

// =======================================================
// POST /api/a/contracts
// =======================================================
func (h *ContractController) CreateContract(c *fiber.Ctx) error {
	var in dto.CreateContractDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	contract, err := h.Assignment.CreateContract(c.UserContext(), service.CreateContractInput{
		RoomID:        in.RoomID,
		TenantID:      in.TenantID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		MonthlyRent:   in.MonthlyRent,
		DepositAmount: in.DepositAmount,
	})
	if err != nil {
		return domainError(c, err)
	}
	return helper.JsonCreated(c, "Đã tạo hợp đồng", dto.ToContractResponse(contract))
}

// =======================================================
// GET /api/a/contracts?room_id=&tenant_id=&status=
// =======================================================
func (h *ContractController) ListContracts(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&contractModel.RentalContractModel{})
	if s := c.Query("room_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "room_id không hợp lệ")
		}
		q = q.Where("contract_room_id = ?", id)
	}
	if s := c.Query("tenant_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tenant_id không hợp lệ")
		}
		q = q.Where("contract_tenant_id = ?", id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("contract_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	var list []contractModel.RentalContractModel
	if err := q.Order("contract_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	pg := helper.BuildPagination(total, p.Page, p.PerPage)
	return helper.JsonList(c, "", dto.ToContractResponses(list), &pg)
}

// =======================================================
// PATCH /api/a/contracts/:id/status: chỉ cho phép kết thúc thủ công
// =======================================================
func (h *ContractController) UpdateContractStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var in struct {
		Status string `json:"status" validate:"required,oneof=expired terminated"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var m contractModel.RentalContractModel
		if err := tx.First(&m, "contract_id = ?", id).Error; err != nil {
			return err
		}
		if m.ContractStatus != constants.ContractActive {
			// đã kết thúc rồi thì thôi, không ghi đè trạng thái cũ
			return nil
		}
		if err := tx.Model(&m).Update("contract_status", in.Status).Error; err != nil {
			return err
		}
		// kết thúc hợp đồng thì trả phòng về available trong cùng transaction
		return tx.Table("rooms").
			Where("room_id = ? AND room_status = ?", m.ContractRoomID, constants.RoomOccupied).
			Update("room_status", constants.RoomAvailable).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy hợp đồng")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	return helper.JsonUpdated(c, "Đã cập nhật hợp đồng", fiber.Map{"contract_id": id, "status": in.Status})
}
