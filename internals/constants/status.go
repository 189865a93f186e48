package constants

// Trạng thái các entity trong domain cho thuê.
const (
	// Property
	PropertyActive   = "active"
	PropertyInactive = "inactive"

	// Room
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"

	// RentalContract
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"

	// RentalInvoice
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue" // chỉ dùng hiển thị, không lưu DB
	InvoiceCancelled = "cancelled"

	// Cách tính dịch vụ theo đồng hồ
	CalcMeter = "meter"
	CalcFlat  = "flat"

	// Mẫu hoá đơn
	TemplateSimple       = "simple"
	TemplateProfessional = "professional"
)

// Đơn giá mặc định khi phòng chưa có hoá đơn nào trước đó (VND).
const (
	DefaultElectricityUnitPrice int64 = 3500
	DefaultWaterUnitPrice       int64 = 25000
)
