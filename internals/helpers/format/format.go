// Tiện ích định dạng tiền tệ, ngày tháng và đọc số thành chữ tiếng Việt.
package format

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// VND định dạng số tiền kiểu Việt Nam: 3400000 -> "3.400.000 ₫".
func VND(amount int64) string {
	return GroupDigits(amount) + " ₫"
}

// GroupDigits chèn dấu chấm ngăn cách hàng nghìn.
func GroupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatDate trả về dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatPeriod trả về "dd/MM/yyyy - dd/MM/yyyy".
func FormatPeriod(start, end time.Time) string {
	return FormatDate(start) + " - " + FormatDate(end)
}

var digitWords = [10]string{
	"không", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín",
}

var scaleWords = [4]string{"", "nghìn", "triệu", "tỷ"}

// NumberToVietnameseWords đọc một số nguyên không âm thành chữ.
// 3400000 -> "ba triệu bốn trăm nghìn".
func NumberToVietnameseWords(n int64) string {
	if n == 0 {
		return "không"
	}
	if n < 0 {
		return "âm " + NumberToVietnameseWords(-n)
	}

	// tách thành các nhóm 3 chữ số, nhóm thấp nhất trước
	var groups []int
	for n > 0 {
		groups = append(groups, int(n%1000))
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		leading := i == len(groups)-1
		words := readGroup(g, !leading)
		if scale := scaleIndex(i); scale != "" {
			words += " " + scale
		}
		parts = append(parts, words)
	}
	return strings.Join(parts, " ")
}

// AmountInWords đọc số tiền: "Ba triệu bốn trăm nghìn đồng".
func AmountInWords(amount int64) string {
	w := NumberToVietnameseWords(amount) + " đồng"
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

// scaleIndex hỗ trợ số lớn hơn tỷ (nghìn tỷ, triệu tỷ).
func scaleIndex(i int) string {
	if i < 4 {
		return scaleWords[i]
	}
	return scaleWords[(i-1)%3+1] + " tỷ"
}

// readGroup đọc một nhóm 3 chữ số. full=true thì đọc cả "không trăm"
// cho các nhóm đứng sau nhóm đầu (1000001 -> "một triệu không trăm lẻ một").
func readGroup(g int, full bool) string {
	hundreds := g / 100
	tens := (g % 100) / 10
	units := g % 10

	var parts []string
	if hundreds > 0 || full {
		parts = append(parts, digitWords[hundreds], "trăm")
	}

	switch {
	case tens == 0:
		if units > 0 && (hundreds > 0 || full) {
			parts = append(parts, "lẻ", digitWords[units])
		} else if units > 0 {
			parts = append(parts, digitWords[units])
		}
	case tens == 1:
		parts = append(parts, "mười")
		if units == 5 {
			parts = append(parts, "lăm")
		} else if units > 0 {
			parts = append(parts, digitWords[units])
		}
	default:
		parts = append(parts, digitWords[tens], "mươi")
		switch units {
		case 0:
		case 1:
			parts = append(parts, "mốt")
		case 5:
			parts = append(parts, "lăm")
		default:
			parts = append(parts, digitWords[units])
		}
	}
	return strings.Join(parts, " ")
}
