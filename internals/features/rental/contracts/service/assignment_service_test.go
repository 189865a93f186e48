package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nhatro_backend/internals/constants"
	database "nhatro_backend/internals/databases"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	propertyModel "nhatro_backend/internals/features/rental/properties/model"
	roomModel "nhatro_backend/internals/features/rental/rooms/model"
	tenantModel "nhatro_backend/internals/features/rental/tenants/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// DB :memory: sống theo connection, nên giữ đúng một connection
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.MigrateOn(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedRoom(t *testing.T, db *gorm.DB) roomModel.RoomModel {
	t.Helper()
	prop := propertyModel.PropertyModel{
		PropertyOwnerID: uuid.New(),
		PropertyName:    "Dãy trọ Bình An",
		PropertyAddress: "12 Lê Lợi",
		PropertyCity:    "Đà Nẵng",
	}
	require.NoError(t, db.Create(&prop).Error)

	room := roomModel.RoomModel{
		RoomPropertyID: prop.PropertyID,
		RoomNumber:     "101",
		RoomRentAmount: 3000000,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedTenant(t *testing.T, db *gorm.DB, name string) tenantModel.TenantModel {
	t.Helper()
	tn := tenantModel.TenantModel{TenantFullName: name}
	require.NoError(t, db.Create(&tn).Error)
	return tn
}

func roomStatus(t *testing.T, db *gorm.DB, id uuid.UUID) string {
	t.Helper()
	var room roomModel.RoomModel
	require.NoError(t, db.First(&room, "room_id = ?", id).Error)
	return room.RoomStatus
}

func TestAssignTenantToRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	room := seedRoom(t, db)
	tenant := seedTenant(t, db, "Nguyễn Văn A")

	contract, err := svc.AssignTenantToRoom(ctx, room.RoomID, tenant.TenantID, 3200000)
	require.NoError(t, err)

	assert.Equal(t, constants.ContractActive, contract.ContractStatus)
	assert.Equal(t, int64(3200000), contract.ContractMonthlyRent)
	assert.Equal(t, constants.RoomOccupied, roomStatus(t, db, room.RoomID))
}

func TestAssignRefusesOccupiedRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	room := seedRoom(t, db)
	first := seedTenant(t, db, "Nguyễn Văn A")
	second := seedTenant(t, db, "Trần Thị B")

	_, err := svc.AssignTenantToRoom(ctx, room.RoomID, first.TenantID, 3000000)
	require.NoError(t, err)

	_, err = svc.AssignTenantToRoom(ctx, room.RoomID, second.TenantID, 3000000)
	assert.ErrorIs(t, err, ErrRoomOccupied)

	var n int64
	require.NoError(t, db.Model(&contractModel.RentalContractModel{}).
		Where("contract_room_id = ? AND contract_status = ?", room.RoomID, constants.ContractActive).
		Count(&n).Error)
	assert.Equal(t, int64(1), n, "phòng chỉ được có một hợp đồng active")
}

func TestAssignRefusesBusyTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	roomA := seedRoom(t, db)
	roomB := roomModel.RoomModel{
		RoomPropertyID: roomA.RoomPropertyID,
		RoomNumber:     "102",
		RoomRentAmount: 2800000,
	}
	require.NoError(t, db.Create(&roomB).Error)
	tenant := seedTenant(t, db, "Nguyễn Văn A")

	_, err := svc.AssignTenantToRoom(ctx, roomA.RoomID, tenant.TenantID, 3000000)
	require.NoError(t, err)

	_, err = svc.AssignTenantToRoom(ctx, roomB.RoomID, tenant.TenantID, 2800000)
	assert.ErrorIs(t, err, ErrTenantBusy)
	assert.Equal(t, constants.RoomAvailable, roomStatus(t, db, roomB.RoomID))
}

func TestAssignRefusesMaintenanceRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	room := seedRoom(t, db)
	require.NoError(t, db.Model(&roomModel.RoomModel{}).
		Where("room_id = ?", room.RoomID).
		Update("room_status", constants.RoomMaintenance).Error)
	tenant := seedTenant(t, db, "Nguyễn Văn A")

	_, err := svc.AssignTenantToRoom(ctx, room.RoomID, tenant.TenantID, 3000000)
	assert.ErrorIs(t, err, ErrRoomMaintenance)
}

func TestUnassignTerminatesAndFreesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	room := seedRoom(t, db)
	tenant := seedTenant(t, db, "Nguyễn Văn A")

	contract, err := svc.AssignTenantToRoom(ctx, room.RoomID, tenant.TenantID, 3000000)
	require.NoError(t, err)

	require.NoError(t, svc.UnassignTenantFromRoom(ctx, room.RoomID))

	var got contractModel.RentalContractModel
	require.NoError(t, db.First(&got, "contract_id = ?", contract.ContractID).Error)
	assert.Equal(t, constants.ContractTerminated, got.ContractStatus)
	assert.Equal(t, constants.RoomAvailable, roomStatus(t, db, room.RoomID))

	// phòng trống rồi thì unassign lần nữa phải báo không có hợp đồng
	err = svc.UnassignTenantFromRoom(ctx, room.RoomID)
	assert.ErrorIs(t, err, ErrNoActiveContract)
}

func TestTransferTenantSingleTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	roomA := seedRoom(t, db)
	roomB := roomModel.RoomModel{
		RoomPropertyID: roomA.RoomPropertyID,
		RoomNumber:     "102",
		RoomRentAmount: 2800000,
	}
	require.NoError(t, db.Create(&roomB).Error)
	tenant := seedTenant(t, db, "Nguyễn Văn A")

	_, err := svc.AssignTenantToRoom(ctx, roomA.RoomID, tenant.TenantID, 3000000)
	require.NoError(t, err)

	moved, err := svc.TransferTenant(ctx, tenant.TenantID, roomA.RoomID, roomB.RoomID, 2800000)
	require.NoError(t, err)

	assert.Equal(t, roomB.RoomID, moved.ContractRoomID)
	assert.Equal(t, constants.RoomAvailable, roomStatus(t, db, roomA.RoomID))
	assert.Equal(t, constants.RoomOccupied, roomStatus(t, db, roomB.RoomID))

	var n int64
	require.NoError(t, db.Model(&contractModel.RentalContractModel{}).
		Where("contract_tenant_id = ? AND contract_status = ?", tenant.TenantID, constants.ContractActive).
		Count(&n).Error)
	assert.Equal(t, int64(1), n, "sau chuyển phòng tenant vẫn đúng một hợp đồng active")
}

func TestTransferRollsBackWhenTargetOccupied(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	roomA := seedRoom(t, db)
	roomB := roomModel.RoomModel{
		RoomPropertyID: roomA.RoomPropertyID,
		RoomNumber:     "102",
		RoomRentAmount: 2800000,
	}
	require.NoError(t, db.Create(&roomB).Error)
	tenantA := seedTenant(t, db, "Nguyễn Văn A")
	tenantB := seedTenant(t, db, "Trần Thị B")

	_, err := svc.AssignTenantToRoom(ctx, roomA.RoomID, tenantA.TenantID, 3000000)
	require.NoError(t, err)
	_, err = svc.AssignTenantToRoom(ctx, roomB.RoomID, tenantB.TenantID, 2800000)
	require.NoError(t, err)

	_, err = svc.TransferTenant(ctx, tenantA.TenantID, roomA.RoomID, roomB.RoomID, 2800000)
	assert.ErrorIs(t, err, ErrRoomOccupied)

	// transaction rollback: tenant A vẫn ở phòng cũ, phòng cũ vẫn occupied
	current, err := svc.ActiveContractForRoom(ctx, roomA.RoomID)
	require.NoError(t, err)
	assert.Equal(t, tenantA.TenantID, current.ContractTenantID)
	assert.Equal(t, constants.RoomOccupied, roomStatus(t, db, roomA.RoomID))
}

func TestUniqueIndexIsFinalArbiter(t *testing.T) {
	db := newTestDB(t)

	room := seedRoom(t, db)
	tenantA := seedTenant(t, db, "Nguyễn Văn A")
	tenantB := seedTenant(t, db, "Trần Thị B")

	mk := func(tenantID uuid.UUID) error {
		return db.Create(&contractModel.RentalContractModel{
			ContractRoomID:      room.RoomID,
			ContractTenantID:    tenantID,
			ContractStartDate:   time.Now(),
			ContractMonthlyRent: 3000000,
			ContractStatus:      constants.ContractActive,
		}).Error
	}

	require.NoError(t, mk(tenantA.TenantID))
	err := mk(tenantB.TenantID)
	require.Error(t, err, "ghi thẳng hợp đồng active thứ hai phải bị index chặn")
	assert.True(t, IsUniqueViolation(err))

	// hợp đồng đã kết thúc không chiếm slot
	require.NoError(t, db.Model(&contractModel.RentalContractModel{}).
		Where("contract_room_id = ?", room.RoomID).
		Update("contract_status", constants.ContractTerminated).Error)
	require.NoError(t, mk(tenantB.TenantID))
}
