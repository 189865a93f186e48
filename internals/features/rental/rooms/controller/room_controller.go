package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	dto "nhatro_backend/internals/features/rental/rooms/dto"
	roomModel "nhatro_backend/internals/features/rental/rooms/model"
	helper "nhatro_backend/internals/helpers"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// =======================================================
// GET /api/a/rooms?property_id=&status=&min_rent=&max_rent=
// =======================================================
func (h *RoomController) ListRooms(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&roomModel.RoomModel{})
	if s := c.Query("property_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "property_id không hợp lệ")
		}
		q = q.Where("room_property_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("room_status = ?", s)
	}
	if s := c.Query("min_rent"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			q = q.Where("room_rent_amount >= ?", v)
		}
	}
	if s := c.Query("max_rent"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			q = q.Where("room_rent_amount <= ?", v)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	var list []roomModel.RoomModel
	if err := q.Order("room_number ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	pg := helper.BuildPagination(total, p.Page, p.PerPage)
	return helper.JsonList(c, "", dto.ToRoomResponses(list), &pg)
}

// =======================================================
// GET /api/a/rooms/:id
// =======================================================
func (h *RoomController) GetRoom(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}
	var m roomModel.RoomModel
	if err := h.DB.First(&m, "room_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy phòng")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "", dto.ToRoomResponse(m))
}

// =======================================================
// POST /api/a/rooms
// =======================================================
func (h *RoomController) CreateRoom(c *fiber.Ctx) error {
	var in dto.RoomCreateDTO
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
	return helper.JsonCreated(c, "Đã tạo phòng", dto.ToRoomResponse(m))
}

// =======================================================
// PATCH /api/a/rooms/:id
// =======================================================
func (h *RoomController) UpdateRoom(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var in dto.RoomUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if fieldErrs := helper.ValidateStruct(in); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var m roomModel.RoomModel
	if err := h.DB.First(&m, "room_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy phòng")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	// đổi sang maintenance chỉ khi phòng không có người thuê
	if in.RoomStatus != nil && m.RoomStatus == constants.RoomOccupied {
		return helper.JsonError(c, fiber.StatusConflict, "Phòng đang cho thuê, không đổi trạng thái tay được")
	}

	dto.ApplyRoomUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonUpdated(c, "Đã cập nhật phòng", dto.ToRoomResponse(m))
}

// =======================================================
// DELETE /api/a/rooms/:id: chặn khi còn hợp đồng active
// =======================================================
func (h *RoomController) DeleteRoom(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id không hợp lệ")
	}

	var n int64
	if err := h.DB.Model(&contractModel.RentalContractModel{}).
		Where("contract_room_id = ? AND contract_status = ?", id, constants.ContractActive).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Phòng đang có hợp đồng hiệu lực, không thể xoá")
	}

	res := h.DB.Where("room_id = ?", id).Delete(&roomModel.RoomModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Không tìm thấy phòng")
	}
	return helper.JsonDeleted(c, "Đã xoá phòng", fiber.Map{"room_id": id})
}

// =======================================================
// GET /api/a/rooms/grouped-by-property?tenant_id=
//
// Trả về dãy trọ kèm danh sách phòng cho dropdown chọn phòng: phòng available,
// cộng thêm phòng hiện tại của tenant (dù occupied) để tenant vẫn thấy phòng mình.
// =======================================================
func (h *RoomController) GroupedByProperty(c *fiber.Ctx) error {
	var tenantRoomID *uuid.UUID
	if s := c.Query("tenant_id"); s != "" {
		tid, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tenant_id không hợp lệ")
		}
		var contract contractModel.RentalContractModel
		if err := h.DB.First(&contract,
			"contract_tenant_id = ? AND contract_status = ?", tid, constants.ContractActive,
		).Error; err == nil {
			tenantRoomID = &contract.ContractRoomID
		}
	}

	type row struct {
		roomModel.RoomModel
		PropertyName string `gorm:"column:property_name"`
	}
	q := h.DB.Table("rooms").
		Select("rooms.*, properties.property_name").
		Joins("JOIN properties ON properties.property_id = rooms.room_property_id AND properties.property_deleted_at IS NULL").
		Where("rooms.room_deleted_at IS NULL")
	if tenantRoomID != nil {
		q = q.Where("rooms.room_status = ? OR rooms.room_id = ?", constants.RoomAvailable, *tenantRoomID)
	} else {
		q = q.Where("rooms.room_status = ?", constants.RoomAvailable)
	}

	var rows []row
	if err := q.Order("properties.property_name ASC, rooms.room_number ASC").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	groups := make([]dto.PropertyRoomsGroup, 0)
	idx := map[uuid.UUID]int{}
	for _, r := range rows {
		i, ok := idx[r.RoomPropertyID]
		if !ok {
			groups = append(groups, dto.PropertyRoomsGroup{
				PropertyID:   r.RoomPropertyID,
				PropertyName: r.PropertyName,
			})
			i = len(groups) - 1
			idx[r.RoomPropertyID] = i
		}
		groups[i].Rooms = append(groups[i].Rooms, dto.ToRoomResponse(r.RoomModel))
	}

	return helper.JsonOK(c, "", groups)
}

// =======================================================
// GET /api/a/rooms/occupied-with-tenant
//
// Phòng đang thuê ⋈ dãy trọ ⋈ hợp đồng active ⋈ người thuê: nguồn dữ liệu
// cho form lập hoá đơn.
// =======================================================
func (h *RoomController) OccupiedWithTenant(c *fiber.Ctx) error {
	var rows []dto.OccupiedRoomRow
	err := h.DB.Table("rooms").
		Select(`rooms.room_id, rooms.room_number, rooms.room_rent_amount,
			properties.property_id, properties.property_name,
			rental_contracts.contract_id, rental_contracts.contract_monthly_rent, rental_contracts.contract_start_date,
			tenants.tenant_id, tenants.tenant_full_name, tenants.tenant_phone`).
		Joins("JOIN properties ON properties.property_id = rooms.room_property_id AND properties.property_deleted_at IS NULL").
		Joins("JOIN rental_contracts ON rental_contracts.contract_room_id = rooms.room_id AND rental_contracts.contract_status = ? AND rental_contracts.contract_deleted_at IS NULL", constants.ContractActive).
		Joins("JOIN tenants ON tenants.tenant_id = rental_contracts.contract_tenant_id AND tenants.tenant_deleted_at IS NULL").
		Where("rooms.room_deleted_at IS NULL AND rooms.room_status = ?", constants.RoomOccupied).
		Order("properties.property_name ASC, rooms.room_number ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "", rows)
}
