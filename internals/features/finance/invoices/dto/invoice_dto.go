package dto

import (
	"time"

	"github.com/google/uuid"

	invoiceModel "nhatro_backend/internals/features/finance/invoices/model"
	service "nhatro_backend/internals/features/finance/invoices/service"
)

// FeeInput là một dòng phí phát sinh trong form.
type FeeInput struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Amount int64   `json:"amount" validate:"gte=0"`
	Note   *string `json:"note"`
}

type MeteredInput struct {
	CalcType        string  `json:"calc_type" validate:"required,oneof=meter flat"`
	PreviousReading int64   `json:"previous_reading" validate:"gte=0"`
	CurrentReading  int64   `json:"current_reading" validate:"gte=0"`
	UnitPrice       int64   `json:"unit_price" validate:"gte=0"`
	Amount          int64   `json:"amount" validate:"gte=0"` // chỉ dùng khi flat
	Note            *string `json:"note"`
}

type CreateInvoiceDTO struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`

	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`

	RentAmount int64 `json:"rent_amount" validate:"gte=0"`

	Electricity MeteredInput `json:"electricity" validate:"required"`
	Water       MeteredInput `json:"water" validate:"required"`

	InternetAmount int64   `json:"internet_amount" validate:"gte=0"`
	InternetNote   *string `json:"internet_note"`
	TrashAmount    int64   `json:"trash_amount" validate:"gte=0"`
	TrashNote      *string `json:"trash_note"`

	OtherFees []FeeInput `json:"other_fees" validate:"dive"`

	CollectionDay int  `json:"collection_day" validate:"omitempty,min=1,max=31"`
	AutoPeriod    bool `json:"auto_period"`

	Notes        *string `json:"notes"`
	TemplateType string  `json:"template_type" validate:"omitempty,oneof=simple professional"`
}

// ToDraft chuyển payload form thành draft cho engine tính toán.
func (d CreateInvoiceDTO) ToDraft() service.BillingDraft {
	draft := service.NewDraft()
	draft.RoomID = d.RoomID
	draft.RentAmount = d.RentAmount

	draft.Electricity = toMetered(d.Electricity)
	draft.Water = toMetered(d.Water)

	draft.InternetAmount = d.InternetAmount
	draft.InternetNote = d.InternetNote
	draft.TrashAmount = d.TrashAmount
	draft.TrashNote = d.TrashNote

	for _, f := range d.OtherFees {
		draft.OtherFees = append(draft.OtherFees, service.FeeLine{Name: f.Name, Amount: f.Amount, Note: f.Note})
	}

	if d.CollectionDay >= 1 && d.CollectionDay <= 31 {
		draft.CollectionDay = d.CollectionDay
	}
	draft.AutoPeriod = d.AutoPeriod
	if d.PeriodStart != nil && d.PeriodEnd != nil {
		draft.PeriodStart = *d.PeriodStart
		draft.PeriodEnd = *d.PeriodEnd
	}

	draft.Notes = d.Notes
	if d.TemplateType != "" {
		draft.TemplateType = d.TemplateType
	}
	return draft
}

func toMetered(in MeteredInput) service.MeteredService {
	return service.MeteredService{
		CalcType:        in.CalcType,
		PreviousReading: in.PreviousReading,
		CurrentReading:  in.CurrentReading,
		UnitPrice:       in.UnitPrice,
		Amount:          in.Amount,
		Note:            in.Note,
	}
}

// ColorSettingsDTO chỉ nhận các khoá theme hợp lệ, bỏ mọi trường lạ.
type ColorSettingsDTO struct {
	ThemeName  *string `json:"theme_name" validate:"omitempty,max=50"`
	HeaderBg   *string `json:"header_bg" validate:"omitempty,hexcolor"`
	HeaderText *string `json:"header_text" validate:"omitempty,hexcolor"`
	TotalBg    *string `json:"total_bg" validate:"omitempty,hexcolor"`
	TotalText  *string `json:"total_text" validate:"omitempty,hexcolor"`
}

// InvoiceResponse kèm display_status suy ra từ hạn thanh toán.
type InvoiceResponse struct {
	invoiceModel.RentalInvoiceModel
	DisplayStatus string `json:"display_status"`
}

func ToInvoiceResponse(m invoiceModel.RentalInvoiceModel, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		RentalInvoiceModel: m,
		DisplayStatus:      service.DeriveDisplayStatus(m, now),
	}
}

func ToInvoiceResponses(list []invoiceModel.RentalInvoiceModel, now time.Time) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToInvoiceResponse(m, now))
	}
	return out
}
