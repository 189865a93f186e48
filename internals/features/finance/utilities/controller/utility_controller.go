package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "nhatro_backend/internals/features/finance/utilities/dto"
	utilityModel "nhatro_backend/internals/features/finance/utilities/model"
	helper "nhatro_backend/internals/helpers"
)

type UtilityController struct {
	DB *gorm.DB
}

func NewUtilityController(db *gorm.DB) *UtilityController {
	return &UtilityController{DB: db}
}

// =======================================================
// GET /api/a/utilities?property_id=
// =======================================================
func (h *UtilityController) ListUtilities(c *fiber.Ctx) error {
	q := h.DB.Model(&utilityModel.UtilityModel{})
	if s := c.Query("property_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "property_id không hợp lệ")
		}
		q = q.Where("utility_property_id = ?", id)
	}

	var list []utilityModel.UtilityModel
	if err := q.Order("utility_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "", list)
}

// =======================================================
// POST /api/a/utilities
// =======================================================
func (h *UtilityController) CreateUtility(c *fiber.Ctx) error {
	var in dto.UtilityCreateDTO
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
	return helper.JsonCreated(c, "Đã thêm dịch vụ", m)
}

// =======================================================
// PATCH /api/a/utilities/:id
// =======================================================
func (h *UtilityController) UpdateUtility(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var in dto.UtilityUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var m utilityModel.UtilityModel
	if err := h.DB.First(&m, "utility_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy dịch vụ")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	dto.ApplyUtilityUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã cập nhật dịch vụ", m)
}

// =======================================================
// DELETE /api/a/utilities/:id: xoá kèm các kỳ thanh toán
// =======================================================
func (h *UtilityController) DeleteUtility(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_utility_id = ?", id).Delete(&utilityModel.UtilityBillModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("utility_id = ?", id).Delete(&utilityModel.UtilityModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy dịch vụ")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonDeleted(c, "Đã xoá dịch vụ", fiber.Map{"utility_id": id})
}

// =======================================================
// GET /api/a/utilities/:id/bills
// =======================================================
func (h *UtilityController) ListBills(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var list []utilityModel.UtilityBillModel
	if err := h.DB.Where("bill_utility_id = ?", id).
		Order("bill_period_end DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "", list)
}

// =======================================================
// POST /api/a/utilities/:id/bills
// =======================================================
func (h *UtilityController) CreateBill(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var in dto.UtilityBillCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in.BillUtilityID = id
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if in.BillPeriodEnd.Before(in.BillPeriodStart) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kỳ thanh toán không hợp lệ")
	}

	var n int64
	if err := h.DB.Model(&utilityModel.UtilityModel{}).Where("utility_id = ?", id).Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy dịch vụ")
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonCreated(c, "Đã ghi kỳ thanh toán", m)
}

// =======================================================
// POST /api/a/utilities/bills/:billId/mark-paid: idempotent
// =======================================================
func (h *UtilityController) MarkBillPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("billId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var m utilityModel.UtilityBillModel
	if err := h.DB.First(&m, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy kỳ thanh toán")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	if m.BillStatus != "paid" {
		now := time.Now()
		m.BillStatus = "paid"
		m.BillPaidAt = &now
		if err := h.DB.Save(&m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
	}
	return helper.JsonUpdated(c, "Đã ghi nhận thanh toán", m)
}
