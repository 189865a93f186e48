package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVND(t *testing.T) {
	assert.Equal(t, "3.400.000 ₫", VND(3400000))
	assert.Equal(t, "0 ₫", VND(0))
	assert.Equal(t, "500 ₫", VND(500))
	assert.Equal(t, "1.000 ₫", VND(1000))
	assert.Equal(t, "25.000 ₫", VND(25000))
	assert.Equal(t, "-1.500.000 ₫", VND(-1500000))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "24/09/2025", FormatDate(d))
	assert.Equal(t, "25/08/2025 - 24/09/2025",
		FormatPeriod(time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC), d))
}

func TestNumberToVietnameseWords(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "không"},
		{5, "năm"},
		{10, "mười"},
		{15, "mười lăm"},
		{21, "hai mươi mốt"},
		{25, "hai mươi lăm"},
		{100, "một trăm"},
		{101, "một trăm lẻ một"},
		{110, "một trăm mười"},
		{1000, "một nghìn"},
		{1001, "một nghìn không trăm lẻ một"},
		{25000, "hai mươi lăm nghìn"},
		{100000, "một trăm nghìn"},
		{3000000, "ba triệu"},
		{3400000, "ba triệu bốn trăm nghìn"},
		{3105000, "ba triệu một trăm lẻ năm nghìn"},
		{1000000001, "một tỷ không trăm lẻ một"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NumberToVietnameseWords(tc.n), "n=%d", tc.n)
	}
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "Ba triệu bốn trăm nghìn đồng", AmountInWords(3400000))
	assert.Equal(t, "Ba triệu đồng", AmountInWords(3000000))
}
