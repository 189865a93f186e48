package database

import (
	"log"

	"gorm.io/gorm"

	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
	utilityModel "nhatro_backend/internals/features/finance/utilities/model"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	propertyModel "nhatro_backend/internals/features/rental/properties/model"
	roomModel "nhatro_backend/internals/features/rental/rooms/model"
	tenantModel "nhatro_backend/internals/features/rental/tenants/model"
	authModel "nhatro_backend/internals/features/users/auth/model"
	userModel "nhatro_backend/internals/features/users/user/model"
)

// Migrate runs AutoMigrate plus the partial unique indexes that back the
// "at most one active contract per room/tenant" invariant. The indexes are
// created with raw SQL because GORM tags cannot express a WHERE clause.
func Migrate() {
	if err := MigrateOn(DB); err != nil {
		log.Fatalf("❌ Migration lỗi: %v", err)
	}
	log.Println("✅ Migration xong.")
}

func MigrateOn(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
		&propertyModel.PropertyModel{},
		&roomModel.RoomModel{},
		&tenantModel.TenantModel{},
		&contractModel.RentalContractModel{},
		&invoiceModel.RentalInvoiceModel{},
		&utilityModel.UtilityModel{},
		&utilityModel.UtilityBillModel{},
	); err != nil {
		return err
	}

	// store-side constraint; a client pre-check is advisory only
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_rental_contracts_room_active
			ON rental_contracts (contract_room_id)
			WHERE contract_status = 'active' AND contract_deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_rental_contracts_tenant_active
			ON rental_contracts (contract_tenant_id)
			WHERE contract_status = 'active' AND contract_deleted_at IS NULL`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
