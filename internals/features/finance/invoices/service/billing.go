package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
	contractModel "nhatro_backend/internals/features/rental/contracts/model"
)

var (
	// ErrNoActiveTenant: phòng chưa có hợp đồng hiệu lực nên không lập được hoá đơn.
	ErrNoActiveTenant = errors.New("phòng chưa có người thuê với hợp đồng hiệu lực")
)

// MeteredService là một dịch vụ tính theo đồng hồ (điện, nước).
// Khi CalcType == flat, Amount nhập tay và số đọc bị bỏ qua.
type MeteredService struct {
	CalcType        string
	PreviousReading int64
	CurrentReading  int64
	UnitPrice       int64
	Amount          int64
	Note            *string
}

type FeeLine struct {
	Name   string  `json:"name"`
	Amount int64   `json:"amount"`
	Note   *string `json:"note,omitempty"`
}

// BillingDraft là trạng thái form lập hoá đơn. Mọi phép tính là hàm thuần
// nhận draft trả draft mới, không có side effect, để test được từng bước.
type BillingDraft struct {
	RoomID     uuid.UUID
	TenantID   uuid.UUID
	ContractID *uuid.UUID

	PeriodStart time.Time
	PeriodEnd   time.Time

	RentAmount int64

	Electricity MeteredService
	Water       MeteredService

	InternetAmount int64
	InternetNote   *string
	TrashAmount    int64
	TrashNote      *string

	OtherFees []FeeLine

	CollectionDay    int
	AutoPeriod       bool
	AutoLoadReadings bool

	Notes        *string
	TemplateType string
}

// NewDraft khởi tạo draft với đơn giá mặc định và mẫu professional.
func NewDraft() BillingDraft {
	return BillingDraft{
		Electricity: MeteredService{
			CalcType:  constants.CalcMeter,
			UnitPrice: constants.DefaultElectricityUnitPrice,
		},
		Water: MeteredService{
			CalcType:  constants.CalcMeter,
			UnitPrice: constants.DefaultWaterUnitPrice,
		},
		CollectionDay: 1,
		AutoPeriod:    true,
		TemplateType:  constants.TemplateProfessional,
	}
}

// MeteredAmount: usage = max(0, cur - prev); amount = usage * đơn giá khi meter,
// giữ nguyên Amount nhập tay khi flat. Usage âm (quay vòng/nhập sai) kẹp về 0.
func MeteredAmount(s MeteredService) int64 {
	if s.CalcType == constants.CalcFlat {
		return s.Amount
	}
	usage := s.CurrentReading - s.PreviousReading
	if usage < 0 {
		usage = 0
	}
	return usage * s.UnitPrice
}

// RecalcMeters tính lại amount cho điện và nước sau mỗi thay đổi số đọc/đơn giá.
func RecalcMeters(d BillingDraft) BillingDraft {
	d.Electricity.Amount = MeteredAmount(d.Electricity)
	d.Water.Amount = MeteredAmount(d.Water)
	return d
}

// Total cộng dồn toàn bộ: tiền phòng + điện + nước + internet + rác + phí khác.
// VND là số nguyên nên cộng chính xác, không có sai số làm tròn.
func Total(d BillingDraft) int64 {
	total := d.RentAmount + d.Electricity.Amount + d.Water.Amount + d.InternetAmount + d.TrashAmount
	for _, f := range d.OtherFees {
		total += f.Amount
	}
	return total
}

// DerivePeriod sinh kỳ hoá đơn từ ngày chốt D, cửa sổ 1 tháng lịch kết thúc
// đúng ngày D. today.day == D tính là "đã tới ngày chốt".
func DerivePeriod(today time.Time, collectionDay int) (start, end time.Time) {
	if collectionDay < 1 {
		collectionDay = 1
	}
	if collectionDay > 31 {
		collectionDay = 31
	}
	y, m, _ := today.Date()
	loc := today.Location()
	if today.Day() >= collectionDay {
		end = time.Date(y, m, collectionDay, 0, 0, 0, 0, loc)
		start = time.Date(y, m-1, collectionDay+1, 0, 0, 0, 0, loc)
	} else {
		end = time.Date(y, m-1, collectionDay, 0, 0, 0, 0, loc)
		start = time.Date(y, m-2, collectionDay+1, 0, 0, 0, 0, loc)
	}
	if start.After(end) {
		start = end
	}
	return start, end
}

// LegacyPeriod là nhánh cũ khi tắt auto_period: cuối tháng thì từ đầu tháng
// tới hôm nay, còn lại là cửa sổ trượt 30 ngày.
func LegacyPeriod(today time.Time) (start, end time.Time) {
	y, m, d := today.Date()
	loc := today.Location()
	end = time.Date(y, m, d, 0, 0, 0, 0, loc)
	if d >= 28 {
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	} else {
		start = end.AddDate(0, 0, -29)
	}
	return start, end
}

// ApplyPeriod cập nhật kỳ hoá đơn theo cờ auto_period hiện tại. Gọi lại mỗi khi
// auto_period hoặc collection_day đổi, hoặc khi mở lại form.
func ApplyPeriod(d BillingDraft, today time.Time) BillingDraft {
	if d.AutoPeriod {
		d.PeriodStart, d.PeriodEnd = DerivePeriod(today, d.CollectionDay)
	} else {
		d.PeriodStart, d.PeriodEnd = LegacyPeriod(today)
	}
	return d
}

// SeedFromPrior nạp số đọc đầu kỳ + đơn giá từ hoá đơn gần nhất của phòng.
// prior == nil (phòng chưa có hoá đơn) thì giữ nguyên mặc định.
func SeedFromPrior(d BillingDraft, prior *invoiceModel.RentalInvoiceModel) BillingDraft {
	if !d.AutoLoadReadings || prior == nil {
		return d
	}
	d.Electricity.PreviousReading = prior.ElectricityCurrentReading
	d.Electricity.UnitPrice = prior.ElectricityUnitPrice
	d.Water.PreviousReading = prior.WaterCurrentReading
	d.Water.UnitPrice = prior.WaterUnitPrice
	return RecalcMeters(d)
}

// BillingService gom truy vấn phụ trợ của form lập hoá đơn.
// Clock tiêm được để test kỳ hoá đơn với "hôm nay" cố định.
type BillingService struct {
	DB    *gorm.DB
	Clock func() time.Time
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db, Clock: time.Now}
}

func (s *BillingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// LatestInvoiceForRoom trả hoá đơn mới nhất của phòng, nil nếu chưa có.
func (s *BillingService) LatestInvoiceForRoom(roomID uuid.UUID) (*invoiceModel.RentalInvoiceModel, error) {
	var m invoiceModel.RentalInvoiceModel
	err := s.DB.Where("invoice_room_id = ?", roomID).
		Order("invoice_created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// PrepareDraft dựng draft cho một phòng: gắn tenant/contract từ hợp đồng active,
// tiền phòng mặc định theo hợp đồng, kỳ theo ngày chốt, số đọc nạp từ hoá đơn trước.
func (s *BillingService) PrepareDraft(roomID uuid.UUID, collectionDay int, autoLoad bool) (BillingDraft, error) {
	d := NewDraft()
	d.RoomID = roomID
	if collectionDay >= 1 && collectionDay <= 31 {
		d.CollectionDay = collectionDay
	}
	d.AutoLoadReadings = autoLoad

	var contract contractModel.RentalContractModel
	err := s.DB.Where("contract_room_id = ? AND contract_status = ?", roomID, constants.ContractActive).
		First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d, ErrNoActiveTenant
	}
	if err != nil {
		return d, err
	}
	d.TenantID = contract.ContractTenantID
	d.ContractID = &contract.ContractID
	d.RentAmount = contract.ContractMonthlyRent

	d = ApplyPeriod(d, s.now())

	if autoLoad {
		prior, err := s.LatestInvoiceForRoom(roomID)
		if err != nil {
			return d, err
		}
		d = SeedFromPrior(d, prior)
	}
	return d, nil
}

// BuildInvoice chốt draft thành bản ghi hoá đơn. Điều kiện tiên quyết: phòng
// phải còn hợp đồng active (kiểm tra lại ngay trước khi ghi, không tin pre-check
// phía client).
func (s *BillingService) BuildInvoice(d BillingDraft) (invoiceModel.RentalInvoiceModel, error) {
	var out invoiceModel.RentalInvoiceModel

	var contract contractModel.RentalContractModel
	err := s.DB.Where("contract_room_id = ? AND contract_status = ?", d.RoomID, constants.ContractActive).
		First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return out, ErrNoActiveTenant
	}
	if err != nil {
		return out, err
	}

	d = RecalcMeters(d)
	now := s.now()

	templateType := d.TemplateType
	if templateType == "" {
		templateType = constants.TemplateProfessional
	}

	out = invoiceModel.RentalInvoiceModel{
		InvoiceRoomID:     d.RoomID,
		InvoiceTenantID:   contract.ContractTenantID,
		InvoiceContractID: &contract.ContractID,

		InvoiceNumber: NewInvoiceNumber(now),

		InvoicePeriodStart: d.PeriodStart,
		InvoicePeriodEnd:   d.PeriodEnd,
		InvoiceIssueDate:   now,
		InvoiceDueDate:     now.AddDate(0, 0, 7),

		InvoiceTemplateType: templateType,
		InvoiceStatus:       constants.InvoiceDraft,

		InvoiceRentAmount: d.RentAmount,

		ElectricityCalcType:        d.Electricity.CalcType,
		ElectricityPreviousReading: d.Electricity.PreviousReading,
		ElectricityCurrentReading:  d.Electricity.CurrentReading,
		ElectricityUnitPrice:       d.Electricity.UnitPrice,
		ElectricityAmount:          d.Electricity.Amount,
		ElectricityNote:            d.Electricity.Note,

		WaterCalcType:        d.Water.CalcType,
		WaterPreviousReading: d.Water.PreviousReading,
		WaterCurrentReading:  d.Water.CurrentReading,
		WaterUnitPrice:       d.Water.UnitPrice,
		WaterAmount:          d.Water.Amount,
		WaterNote:            d.Water.Note,

		InternetAmount: d.InternetAmount,
		InternetNote:   d.InternetNote,
		TrashAmount:    d.TrashAmount,
		TrashNote:      d.TrashNote,

		InvoiceOtherFees: feesJSON(d.OtherFees),

		InvoiceTotalAmount: Total(d),
		InvoiceNotes:       d.Notes,
	}
	return out, nil
}

// NewInvoiceNumber: HD-YYYYMMDD-XXXXXX, hậu tố từ uuid để tránh đụng nhau
// khi double-submit.
func NewInvoiceNumber(now time.Time) string {
	suffix := uuid.New().String()[:6]
	return fmt.Sprintf("HD-%s-%s", now.Format("20060102"), suffix)
}

func feesJSON(fees []FeeLine) datatypes.JSON {
	if fees == nil {
		fees = []FeeLine{}
	}
	b, err := json.Marshal(fees)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

// ParseFees đọc lại danh sách phí từ cột jsonb.
func ParseFees(raw datatypes.JSON) []FeeLine {
	if len(raw) == 0 {
		return nil
	}
	var fees []FeeLine
	if err := json.Unmarshal(raw, &fees); err != nil {
		return nil
	}
	return fees
}
