package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	dto "nhatro_backend/internals/features/rental/properties/dto"
	propertyModel "nhatro_backend/internals/features/rental/properties/model"
	roomModel "nhatro_backend/internals/features/rental/rooms/model"
	helper "nhatro_backend/internals/helpers"
)

type PropertyController struct {
	DB *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db}
}

// occupancyStats tính lại số phòng từ bảng rooms: không lưu sẵn.
func (h *PropertyController) occupancyStats(propertyID uuid.UUID) (dto.OccupancyStats, error) {
	type row struct {
		RoomStatus string
		N          int
	}
	var rows []row
	err := h.DB.Model(&roomModel.RoomModel{}).
		Select("room_status, COUNT(*) AS n").
		Where("room_property_id = ?", propertyID).
		Group("room_status").
		Scan(&rows).Error
	if err != nil {
		return dto.OccupancyStats{}, err
	}

	var stats dto.OccupancyStats
	for _, r := range rows {
		stats.TotalRooms += r.N
		switch r.RoomStatus {
		case constants.RoomOccupied:
			stats.OccupiedRooms += r.N
		case constants.RoomAvailable:
			stats.AvailableRooms += r.N
		}
	}
	if stats.TotalRooms > 0 {
		stats.OccupancyRate = float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100
	}
	return stats, nil
}

// =======================================================
// GET /api/a/properties?search=&city=&district=&status=&min_occupancy=&max_occupancy=
// =======================================================
func (h *PropertyController) ListProperties(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&propertyModel.PropertyModel{})
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("property_name ILIKE ? OR property_address ILIKE ?", like, like)
	}
	if s := strings.TrimSpace(c.Query("city")); s != "" {
		q = q.Where("property_city = ?", s)
	}
	if s := strings.TrimSpace(c.Query("district")); s != "" {
		q = q.Where("property_district = ?", s)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("property_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	var list []propertyModel.PropertyModel
	if err := q.Order("property_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	// lọc theo tỷ lệ lấp đầy (dẫn xuất) sau khi đã phân trang theo thuộc tính gốc
	minOcc, hasMin := parsePct(c.Query("min_occupancy"))
	maxOcc, hasMax := parsePct(c.Query("max_occupancy"))

	out := make([]dto.PropertyResponse, 0, len(list))
	for _, m := range list {
		stats, err := h.occupancyStats(m.PropertyID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
		if hasMin && stats.OccupancyRate < minOcc {
			continue
		}
		if hasMax && stats.OccupancyRate > maxOcc {
			continue
		}
		out = append(out, dto.ToPropertyResponse(m, stats))
	}

	pg := helper.BuildPagination(total, p.Page, p.PerPage)
	return helper.JsonList(c, "", out, &pg)
}

func parsePct(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// =======================================================
// GET /api/a/properties/:id
// =======================================================
func (h *PropertyController) GetProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var m propertyModel.PropertyModel
	if err := h.DB.First(&m, "property_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy dãy trọ")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	stats, err := h.occupancyStats(m.PropertyID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "", dto.ToPropertyResponse(m, stats))
}

// =======================================================
// POST /api/a/properties
// =======================================================
func (h *PropertyController) CreateProperty(c *fiber.Ctx) error {
	ownerID, err := helper.UserUUID(c)
	if err != nil {
		return err
	}

	var in dto.PropertyCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	m := in.ToModel(ownerID)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonCreated(c, "Đã tạo dãy trọ", dto.ToPropertyResponse(m, dto.OccupancyStats{}))
}

// =======================================================
// PATCH /api/a/properties/:id
// =======================================================
func (h *PropertyController) UpdateProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var in dto.PropertyUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var m propertyModel.PropertyModel
	if err := h.DB.First(&m, "property_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy dãy trọ")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	dto.ApplyPropertyUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	stats, err := h.occupancyStats(m.PropertyID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã cập nhật dãy trọ", dto.ToPropertyResponse(m, stats))
}

// =======================================================
// DELETE /api/a/properties/:id: soft delete, chặn khi còn phòng đang thuê
// =======================================================
func (h *PropertyController) DeleteProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var occupied int64
	if err := h.DB.Model(&roomModel.RoomModel{}).
		Where("room_property_id = ? AND room_status = ?", id, constants.RoomOccupied).
		Count(&occupied).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if occupied > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Dãy trọ còn phòng đang cho thuê, không thể xoá")
	}

	res := h.DB.Where("property_id = ?", id).Delete(&propertyModel.PropertyModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy dãy trọ")
	}
	return helper.JsonDeleted(c, "Đã xoá dãy trọ", fiber.Map{"property_id": id})
}
