package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
)

const (
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatWebP = "webp"
)

// RenderClient gọi dịch vụ render ngoài: nhận markup HTML, trả ảnh/PDF.
type RenderClient struct {
	http    *resty.Client
	baseURL string
}

func NewRenderClient(baseURL string) *RenderClient {
	c := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(0) // fire-and-report, không retry
	return &RenderClient{http: c, baseURL: baseURL}
}

type renderRequest struct {
	Markup   string `json:"markup"`
	Format   string `json:"format"`
	Filename string `json:"filename"`
}

// Result là blob đã render kèm content type để trả thẳng về client.
type Result struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Render gửi markup sang dịch vụ render. format ∈ {png, pdf}.
func (c *RenderClient) Render(markup, format, filename string) (*Result, error) {
	if format != FormatPNG && format != FormatPDF {
		return nil, fmt.Errorf("định dạng không hỗ trợ: %s", format)
	}

	resp, err := c.http.R().
		SetBody(renderRequest{Markup: markup, Format: format, Filename: filename}).
		Post(c.baseURL + "/render")
	if err != nil {
		return nil, fmt.Errorf("gọi dịch vụ render lỗi: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dịch vụ render trả %d", resp.StatusCode())
	}

	ct := resp.Header().Get("Content-Type")
	if ct == "" {
		if format == FormatPDF {
			ct = "application/pdf"
		} else {
			ct = "image/png"
		}
	}
	return &Result{
		Content:     resp.Body(),
		ContentType: ct,
		Filename:    fmt.Sprintf("%s.%s", filename, format),
	}, nil
}

// ToWebP nén lại ảnh PNG nhận về thành webp: resize về bề ngang chuẩn nếu
// ảnh quá to rồi encode lossy, tiết kiệm băng thông khi chia sẻ qua chat.
func ToWebP(pngBytes []byte, maxWidth int, quality float32) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("đọc ảnh render lỗi: %w", err)
	}

	if maxWidth > 0 && src.Bounds().Dx() > maxWidth {
		src = imaging.Resize(src, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp lỗi: %w", err)
	}
	return buf.Bytes(), nil
}
