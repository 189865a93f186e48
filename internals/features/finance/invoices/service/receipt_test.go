package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhatro_backend/internals/constants"
	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
)

func sampleInvoice() invoiceModel.RentalInvoiceModel {
	return invoiceModel.RentalInvoiceModel{
		InvoiceNumber:      "HD-20250925-abc123",
		InvoicePeriodStart: date(2025, 8, 25),
		InvoicePeriodEnd:   date(2025, 9, 24),
		InvoiceIssueDate:   date(2025, 9, 25),
		InvoiceDueDate:     date(2025, 10, 2),
		InvoiceStatus:      constants.InvoiceDraft,

		InvoiceRentAmount: 3000000,

		ElectricityCalcType:        constants.CalcMeter,
		ElectricityPreviousReading: 100,
		ElectricityCurrentReading:  130,
		ElectricityUnitPrice:       3500,
		ElectricityAmount:          105000,

		WaterCalcType:        constants.CalcMeter,
		WaterPreviousReading: 10,
		WaterCurrentReading:  15,
		WaterUnitPrice:       25000,
		WaterAmount:          125000,

		InternetAmount: 50000,
		TrashAmount:    20000,

		InvoiceOtherFees:   feesJSON([]FeeLine{{Name: "Phí gửi xe", Amount: 100000}}),
		InvoiceTotalAmount: 3400000,
	}
}

func TestRendererFor(t *testing.T) {
	assert.IsType(t, simpleRenderer{}, RendererFor(constants.TemplateSimple))
	assert.IsType(t, professionalRenderer{}, RendererFor(constants.TemplateProfessional))
	assert.IsType(t, professionalRenderer{}, RendererFor(""), "mặc định là professional")
}

func TestRenderReceipt(t *testing.T) {
	inv := sampleInvoice()
	info := ReceiptInfo{
		PropertyName: "Dãy trọ Bình An",
		RoomNumber:   "101",
		TenantName:   "Nguyễn Văn A",
	}

	for _, tt := range []string{constants.TemplateSimple, constants.TemplateProfessional} {
		t.Run(tt, func(t *testing.T) {
			markup, err := RendererFor(tt).Render(inv, info)
			require.NoError(t, err)

			assert.Contains(t, markup, "HD-20250925-abc123")
			assert.Contains(t, markup, "Dãy trọ Bình An")
			assert.Contains(t, markup, "Nguyễn Văn A")
			assert.Contains(t, markup, "Phí gửi xe")
			assert.Contains(t, markup, "3.400.000")
			assert.True(t, strings.Contains(markup, "TỔNG CỘNG"))
		})
	}
}

func TestMergeColorSettings(t *testing.T) {
	str := func(s string) *string { return &s }

	raw, err := MergeColorSettings(nil, str("dark"), str("#111111"), nil, nil, nil)
	require.NoError(t, err)

	// lần hai chỉ đổi total_bg, các khoá cũ giữ nguyên
	raw, err = MergeColorSettings(raw, nil, nil, nil, str("#222222"), nil)
	require.NoError(t, err)

	inv := sampleInvoice()
	inv.InvoiceColorSettings = raw
	cs := colorsOf(inv)
	assert.Equal(t, "dark", cs.ThemeName)
	assert.Equal(t, "#111111", cs.HeaderBg)
	assert.Equal(t, "#222222", cs.TotalBg)
	assert.Equal(t, defaultColors().HeaderText, cs.HeaderText, "khoá chưa set dùng mặc định")
}
