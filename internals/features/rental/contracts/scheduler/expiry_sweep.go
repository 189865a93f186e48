package scheduler

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
	roomModel "nhatro_backend/internals/features/rental/rooms/model"
)

// StartContractExpirySweep là tính năng bật bằng env EXPIRE_SWEEP=true:
// mỗi 24h chuyển hợp đồng active đã quá end_date sang expired và trả phòng
// về available. Tắt mặc định: trạng thái expired bình thường chỉ là
// giá trị hiển thị dẫn xuất, không ghi DB.
func StartContractExpirySweep(db *gorm.DB) {
	if os.Getenv("EXPIRE_SWEEP") != "true" {
		return
	}
	go func() {
		for {
			sweepOnce(db)
			time.Sleep(24 * time.Hour)
		}
	}()
}

func sweepOnce(db *gorm.DB) {
	today := time.Now()

	var expired []contractModel.RentalContractModel
	if err := db.
		Where("contract_status = ? AND contract_end_date IS NOT NULL AND contract_end_date < ?",
			constants.ContractActive, today).
		Find(&expired).Error; err != nil {
		log.Printf("[EXPIRE SWEEP ERROR] %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	for _, ct := range expired {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&contractModel.RentalContractModel{}).
				Where("contract_id = ? AND contract_status = ?", ct.ContractID, constants.ContractActive).
				Update("contract_status", constants.ContractExpired).Error; err != nil {
				return err
			}
			return tx.Model(&roomModel.RoomModel{}).
				Where("room_id = ? AND room_status = ?", ct.ContractRoomID, constants.RoomOccupied).
				Update("room_status", constants.RoomAvailable).Error
		})
		if err != nil {
			log.Printf("[EXPIRE SWEEP ERROR] contract %s: %v", ct.ContractID, err)
		}
	}
	log.Printf("[EXPIRE SWEEP] đã chuyển %d hợp đồng sang expired", len(expired))
}
