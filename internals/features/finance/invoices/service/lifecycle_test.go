package service

import (
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
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
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
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.MigrateOn(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedOccupiedRoom(t *testing.T, db *gorm.DB) (roomModel.RoomModel, contractModel.RentalContractModel) {
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
		RoomStatus:     constants.RoomOccupied,
	}
	require.NoError(t, db.Create(&room).Error)

	tenant := tenantModel.TenantModel{TenantFullName: "Nguyễn Văn A"}
	require.NoError(t, db.Create(&tenant).Error)

	contract := contractModel.RentalContractModel{
		ContractRoomID:      room.RoomID,
		ContractTenantID:    tenant.TenantID,
		ContractStartDate:   time.Now(),
		ContractMonthlyRent: 3000000,
		ContractStatus:      constants.ContractActive,
	}
	require.NoError(t, db.Create(&contract).Error)
	return room, contract
}

func TestBuildInvoiceRequiresActiveContract(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	d := NewDraft()
	d.RoomID = uuid.New() // phòng không tồn tại / không có hợp đồng

	_, err := svc.BuildInvoice(d)
	assert.ErrorIs(t, err, ErrNoActiveTenant)

	var n int64
	require.NoError(t, db.Model(&invoiceModel.RentalInvoiceModel{}).Count(&n).Error)
	assert.Zero(t, n, "không được ghi gì xuống store khi precondition fail")
}

func TestBuildInvoiceSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	svc.Clock = func() time.Time { return date(2025, 9, 25) }

	room, contract := seedOccupiedRoom(t, db)

	d := NewDraft()
	d.RoomID = room.RoomID
	d.RentAmount = 3000000
	d.Electricity.PreviousReading = 100
	d.Electricity.CurrentReading = 130
	d.Water.PreviousReading = 10
	d.Water.CurrentReading = 15
	d.InternetAmount = 50000
	d.TrashAmount = 20000
	d.OtherFees = []FeeLine{{Name: "Phí gửi xe", Amount: 100000}}
	d = ApplyPeriod(d, svc.Clock())
	d.CollectionDay = 24

	inv, err := svc.BuildInvoice(d)
	require.NoError(t, err)
	require.NoError(t, db.Create(&inv).Error)

	assert.Equal(t, contract.ContractTenantID, inv.InvoiceTenantID)
	require.NotNil(t, inv.InvoiceContractID)
	assert.Equal(t, contract.ContractID, *inv.InvoiceContractID)
	assert.Equal(t, constants.InvoiceDraft, inv.InvoiceStatus)
	assert.Equal(t, constants.TemplateProfessional, inv.InvoiceTemplateType)
	assert.Equal(t, int64(3400000), inv.InvoiceTotalAmount)
	assert.NotEmpty(t, inv.InvoiceNumber)
	assert.Equal(t, inv.InvoiceIssueDate.AddDate(0, 0, 7), inv.InvoiceDueDate)
}

func TestLatestInvoiceForRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)

	room, _ := seedOccupiedRoom(t, db)

	got, err := svc.LatestInvoiceForRoom(room.RoomID)
	require.NoError(t, err)
	assert.Nil(t, got, "phòng chưa có hoá đơn")

	older := invoiceModel.RentalInvoiceModel{
		InvoiceRoomID:             room.RoomID,
		InvoiceTenantID:           uuid.New(),
		InvoiceNumber:             "HD-20250801-aaaaaa",
		InvoicePeriodStart:        date(2025, 7, 25),
		InvoicePeriodEnd:          date(2025, 8, 24),
		InvoiceIssueDate:          date(2025, 8, 25),
		InvoiceDueDate:            date(2025, 9, 1),
		ElectricityCurrentReading: 100,
	}
	require.NoError(t, db.Create(&older).Error)
	// ép thứ tự thời gian rõ ràng
	require.NoError(t, db.Model(&older).Update("invoice_created_at", date(2025, 8, 25)).Error)

	newer := invoiceModel.RentalInvoiceModel{
		InvoiceRoomID:             room.RoomID,
		InvoiceTenantID:           uuid.New(),
		InvoiceNumber:             "HD-20250901-bbbbbb",
		InvoicePeriodStart:        date(2025, 8, 25),
		InvoicePeriodEnd:          date(2025, 9, 24),
		InvoiceIssueDate:          date(2025, 9, 25),
		InvoiceDueDate:            date(2025, 10, 1),
		ElectricityCurrentReading: 130,
	}
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Model(&newer).Update("invoice_created_at", date(2025, 9, 25)).Error)

	got, err = svc.LatestInvoiceForRoom(room.RoomID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "HD-20250901-bbbbbb", got.InvoiceNumber)
	assert.Equal(t, int64(130), got.ElectricityCurrentReading)
}

func TestWebhookMarksPaidIdempotent(t *testing.T) {
	db := newTestDB(t)

	room, _ := seedOccupiedRoom(t, db)
	inv := invoiceModel.RentalInvoiceModel{
		InvoiceRoomID:      room.RoomID,
		InvoiceTenantID:    uuid.New(),
		InvoiceNumber:      "HD-20250901-cccccc",
		InvoicePeriodStart: date(2025, 8, 25),
		InvoicePeriodEnd:   date(2025, 9, 24),
		InvoiceIssueDate:   date(2025, 9, 25),
		InvoiceDueDate:     date(2025, 10, 1),
		InvoiceStatus:      constants.InvoiceSent,
		InvoiceTotalAmount: 3400000,
	}
	require.NoError(t, db.Create(&inv).Error)

	body := map[string]interface{}{
		"order_id":           inv.InvoiceNumber,
		"transaction_status": "settlement",
	}
	require.NoError(t, HandleInvoicePaymentWebhook(db, body))

	var got invoiceModel.RentalInvoiceModel
	require.NoError(t, db.First(&got, "invoice_id = ?", inv.InvoiceID).Error)
	assert.Equal(t, constants.InvoicePaid, got.InvoiceStatus)
	require.NotNil(t, got.InvoicePaidAt)
	firstPaidAt := *got.InvoicePaidAt

	// gọi lại không lỗi, không đổi paid_at
	require.NoError(t, HandleInvoicePaymentWebhook(db, body))
	require.NoError(t, db.First(&got, "invoice_id = ?", inv.InvoiceID).Error)
	assert.Equal(t, constants.InvoicePaid, got.InvoiceStatus)
	assert.True(t, got.InvoicePaidAt.Equal(firstPaidAt))

	// expire sau khi đã trả không được hạ trạng thái
	body["transaction_status"] = "expire"
	require.NoError(t, HandleInvoicePaymentWebhook(db, body))
	require.NoError(t, db.First(&got, "invoice_id = ?", inv.InvoiceID).Error)
	assert.Equal(t, constants.InvoicePaid, got.InvoiceStatus)
}
