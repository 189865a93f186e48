package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhatro_backend/internals/constants"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMeteredAmount(t *testing.T) {
	t.Run("meter", func(t *testing.T) {
		s := MeteredService{CalcType: constants.CalcMeter, PreviousReading: 100, CurrentReading: 130, UnitPrice: 3500}
		assert.Equal(t, int64(105000), MeteredAmount(s))
	})

	t.Run("usage âm kẹp về 0", func(t *testing.T) {
		s := MeteredService{CalcType: constants.CalcMeter, PreviousReading: 130, CurrentReading: 100, UnitPrice: 3500}
		assert.Equal(t, int64(0), MeteredAmount(s))
	})

	t.Run("flat bỏ qua số đọc", func(t *testing.T) {
		s := MeteredService{CalcType: constants.CalcFlat, Amount: 200000, PreviousReading: 999, CurrentReading: 0, UnitPrice: 3500}
		assert.Equal(t, int64(200000), MeteredAmount(s))

		s.PreviousReading = 12345
		assert.Equal(t, int64(200000), MeteredAmount(s), "đổi số đọc không được ảnh hưởng amount khi flat")
	})
}

func TestTotalScenarioA(t *testing.T) {
	note := "Phí gửi xe"
	d := NewDraft()
	d.RentAmount = 3000000
	d.Electricity.PreviousReading = 100
	d.Electricity.CurrentReading = 130
	d.Electricity.UnitPrice = 3500
	d.Water.PreviousReading = 10
	d.Water.CurrentReading = 15
	d.Water.UnitPrice = 25000
	d.InternetAmount = 50000
	d.TrashAmount = 20000
	d.OtherFees = []FeeLine{{Name: note, Amount: 100000}}

	d = RecalcMeters(d)
	assert.Equal(t, int64(105000), d.Electricity.Amount)
	assert.Equal(t, int64(125000), d.Water.Amount)
	assert.Equal(t, int64(3400000), Total(d))
}

func TestTotalAdditivity(t *testing.T) {
	d := NewDraft()
	d.RentAmount = 1
	d.Electricity = MeteredService{CalcType: constants.CalcFlat, Amount: 2}
	d.Water = MeteredService{CalcType: constants.CalcFlat, Amount: 3}
	d.InternetAmount = 4
	d.TrashAmount = 5
	d.OtherFees = []FeeLine{{Name: "a", Amount: 6}, {Name: "b", Amount: 7}}
	d = RecalcMeters(d)
	assert.Equal(t, int64(1+2+3+4+5+6+7), Total(d))
}

func TestDerivePeriod(t *testing.T) {
	cases := []struct {
		name      string
		today     time.Time
		day       int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"trước ngày chốt", date(2025, 9, 20), 24, date(2025, 7, 25), date(2025, 8, 24)},
		{"sau ngày chốt", date(2025, 9, 25), 24, date(2025, 8, 25), date(2025, 9, 24)},
		{"đúng ngày chốt tính là đã tới", date(2025, 9, 24), 24, date(2025, 8, 25), date(2025, 9, 24)},
		{"qua ranh giới năm", date(2026, 1, 10), 24, date(2025, 11, 25), date(2025, 12, 24)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := DerivePeriod(tc.today, tc.day)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
			assert.False(t, start.After(end))
		})
	}
}

func TestDerivePeriodDeterministic(t *testing.T) {
	today := date(2025, 6, 15)
	s1, e1 := DerivePeriod(today, 10)
	s2, e2 := DerivePeriod(today, 10)
	assert.Equal(t, s1, s2)
	assert.Equal(t, e1, e2)
}

func TestLegacyPeriod(t *testing.T) {
	t.Run("cuối tháng từ đầu tháng", func(t *testing.T) {
		start, end := LegacyPeriod(date(2025, 9, 28))
		assert.Equal(t, date(2025, 9, 1), start)
		assert.Equal(t, date(2025, 9, 28), end)
	})

	t.Run("giữa tháng cửa sổ 30 ngày", func(t *testing.T) {
		start, end := LegacyPeriod(date(2025, 9, 15))
		assert.Equal(t, date(2025, 8, 17), start)
		assert.Equal(t, date(2025, 9, 15), end)
	})
}

func TestSeedFromPrior(t *testing.T) {
	prior := &invoiceModel.RentalInvoiceModel{
		ElectricityCurrentReading: 130,
		ElectricityUnitPrice:      4000,
		WaterCurrentReading:       15,
		WaterUnitPrice:            30000,
	}

	t.Run("nạp số đọc và đơn giá", func(t *testing.T) {
		d := NewDraft()
		d.AutoLoadReadings = true
		d = SeedFromPrior(d, prior)
		assert.Equal(t, int64(130), d.Electricity.PreviousReading)
		assert.Equal(t, int64(4000), d.Electricity.UnitPrice)
		assert.Equal(t, int64(15), d.Water.PreviousReading)
		assert.Equal(t, int64(30000), d.Water.UnitPrice)
	})

	t.Run("chưa có hoá đơn trước thì giữ mặc định", func(t *testing.T) {
		d := NewDraft()
		d.AutoLoadReadings = true
		d = SeedFromPrior(d, nil)
		assert.Equal(t, int64(0), d.Electricity.PreviousReading)
		assert.Equal(t, constants.DefaultElectricityUnitPrice, d.Electricity.UnitPrice)
		assert.Equal(t, constants.DefaultWaterUnitPrice, d.Water.UnitPrice)
	})

	t.Run("tắt auto_load thì không đụng gì", func(t *testing.T) {
		d := NewDraft()
		d = SeedFromPrior(d, prior)
		assert.Equal(t, int64(0), d.Electricity.PreviousReading)
	})
}

func TestDeriveDisplayStatus(t *testing.T) {
	now := date(2025, 9, 10)
	mk := func(status string, due time.Time) invoiceModel.RentalInvoiceModel {
		return invoiceModel.RentalInvoiceModel{InvoiceStatus: status, InvoiceDueDate: due}
	}

	assert.Equal(t, constants.InvoiceOverdue, DeriveDisplayStatus(mk(constants.InvoiceSent, date(2025, 9, 1)), now))
	assert.Equal(t, constants.InvoiceOverdue, DeriveDisplayStatus(mk(constants.InvoiceDraft, date(2025, 9, 9)), now))
	assert.Equal(t, constants.InvoiceSent, DeriveDisplayStatus(mk(constants.InvoiceSent, date(2025, 9, 10)), now), "đúng hạn chưa phải quá hạn")
	assert.Equal(t, constants.InvoicePaid, DeriveDisplayStatus(mk(constants.InvoicePaid, date(2025, 9, 1)), now), "đã trả thì không bao giờ overdue")
	assert.Equal(t, constants.InvoiceCancelled, DeriveDisplayStatus(mk(constants.InvoiceCancelled, date(2025, 9, 1)), now))
}

func TestParseFeesRoundTrip(t *testing.T) {
	fees := []FeeLine{{Name: "Phí gửi xe", Amount: 100000}}
	got := ParseFees(feesJSON(fees))
	require.Len(t, got, 1)
	assert.Equal(t, fees[0].Name, got[0].Name)
	assert.Equal(t, fees[0].Amount, got[0].Amount)
}
