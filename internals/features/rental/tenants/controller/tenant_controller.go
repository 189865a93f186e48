package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	dto "nhatro_backend/internals/features/rental/tenants/dto"
	tenantModel "nhatro_backend/internals/features/rental/tenants/model"
	helper "nhatro_backend/internals/helpers"
)

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

// =======================================================
// GET /api/a/tenants?search=&contract_status=&property_id=
//
// contract_status=active → chỉ tenant đang thuê; =none → tenant chưa có hợp đồng active.
// property_id lọc theo dãy trọ của phòng đang thuê.
// =======================================================
func (h *TenantController) ListTenants(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Table("tenants").Where("tenants.tenant_deleted_at IS NULL")

	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("tenants.tenant_full_name ILIKE ? OR tenants.tenant_phone ILIKE ? OR tenants.tenant_id_number ILIKE ?", like, like, like)
	}

	activeJoin := "LEFT JOIN rental_contracts rc ON rc.contract_tenant_id = tenants.tenant_id AND rc.contract_status = '" + constants.ContractActive + "' AND rc.contract_deleted_at IS NULL"
	q = q.Joins(activeJoin)

	switch c.Query("contract_status") {
	case "active":
		q = q.Where("rc.contract_id IS NOT NULL")
	case "none":
		q = q.Where("rc.contract_id IS NULL")
	}

	if s := c.Query("property_id"); s != "" {
		pid, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "property_id không hợp lệ")
		}
		q = q.Joins("JOIN rooms ON rooms.room_id = rc.contract_room_id").
			Where("rooms.room_property_id = ?", pid)
	}

	var total int64
	if err := q.Distinct("tenants.tenant_id").Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	var rows []dto.TenantWithStay
	err := q.
		Select(`tenants.*,
			rc.contract_id, rc.contract_status, rc.contract_room_id AS room_id`).
		Order("tenants.tenant_full_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	pg := helper.BuildPagination(total, p.Page, p.PerPage)
	return helper.JsonList(c, "", rows, &pg)
}

// =======================================================
// GET /api/a/tenants/:id: kèm phòng/dãy trọ hiện tại
// =======================================================
func (h *TenantController) GetTenant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var m tenantModel.TenantModel
	if err := h.DB.First(&m, "tenant_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy người thuê")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	out := dto.TenantWithStay{TenantResponse: dto.ToTenantResponse(m)}

	type stayRow struct {
		ContractID     uuid.UUID `gorm:"column:contract_id"`
		ContractStatus string    `gorm:"column:contract_status"`
		RoomID         uuid.UUID `gorm:"column:room_id"`
		RoomNumber     string    `gorm:"column:room_number"`
		PropertyID     uuid.UUID `gorm:"column:property_id"`
		PropertyName   string    `gorm:"column:property_name"`
	}
	var stay stayRow
	err = h.DB.Table("rental_contracts").
		Select(`rental_contracts.contract_id, rental_contracts.contract_status,
			rooms.room_id, rooms.room_number,
			properties.property_id, properties.property_name`).
		Joins("JOIN rooms ON rooms.room_id = rental_contracts.contract_room_id").
		Joins("JOIN properties ON properties.property_id = rooms.room_property_id").
		Where("rental_contracts.contract_tenant_id = ? AND rental_contracts.contract_status = ? AND rental_contracts.contract_deleted_at IS NULL",
			id, constants.ContractActive).
		Take(&stay).Error
	if err == nil {
		out.ContractID = &stay.ContractID
		out.ContractStatus = &stay.ContractStatus
		out.RoomID = &stay.RoomID
		out.RoomNumber = &stay.RoomNumber
		out.PropertyID = &stay.PropertyID
		out.PropertyName = &stay.PropertyName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	return helper.JsonOK(c, "", out)
}

// =======================================================
// POST /api/a/tenants
// =======================================================
func (h *TenantController) CreateTenant(c *fiber.Ctx) error {
	var in dto.TenantCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonCreated(c, "Đã thêm người thuê", dto.ToTenantResponse(m))
}

// =======================================================
// PATCH /api/a/tenants/:id
// =======================================================
func (h *TenantController) UpdateTenant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var in dto.TenantUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var m tenantModel.TenantModel
	if err := h.DB.First(&m, "tenant_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy người thuê")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	dto.ApplyTenantUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã cập nhật người thuê", dto.ToTenantResponse(m))
}

// =======================================================
// DELETE /api/a/tenants/:id: chặn khi còn hợp đồng active
// =======================================================
func (h *TenantController) DeleteTenant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var n int64
	if err := h.DB.Model(&contractModel.RentalContractModel{}).
		Where("contract_tenant_id = ? AND contract_status = ?", id, constants.ContractActive).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Người thuê đang có hợp đồng hiệu lực, không thể xoá")
	}

	res := h.DB.Where("tenant_id = ?", id).Delete(&tenantModel.TenantModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy người thuê")
	}
	return helper.JsonDeleted(c, "Đã xoá người thuê", fiber.Map{"tenant_id": id})
}
