package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is a signed acknowledgement that an amount was received
type Receipt struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PublicID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"public_id" swaggertype:"string" format:"uuid"`
	Number        string          `gorm:"size:50;not null;uniqueIndex:receipts_number_key" json:"number"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount" swaggertype:"primitive,number"`
	AmountInWords string          `gorm:"size:255;not null" json:"amount_in_words"`
	ReceivedFrom  string          `gorm:"size:255;not null" json:"received_from"`
	Concept       string          `gorm:"type:text;not null" json:"concept"`
	Location      string          `gorm:"size:255;not null" json:"location"`
	Date          string          `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	ReceivedBy    string          `gorm:"size:255;not null" json:"received_by"`
	Status        string          `gorm:"size:20;not null;default:issued;index" json:"status"`
	VoidReason    *string         `json:"void_reason"`
	VoidedAt      *time.Time      `json:"voided_at"`
	CreatedBy     uint            `gorm:"index" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Receipt
func (Receipt) TableName() string {
	return "receipts"
}

// Receipt status constants
const (
	ReceiptStatusIssued = "issued"
	ReceiptStatusVoided = "voided"
)

// ReceiptDateLayout is the layout of Receipt.Date
const ReceiptDateLayout = "2006-01-02"

// BeforeCreate hook for setting defaults
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.PublicID == uuid.Nil {
		r.PublicID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReceiptStatusIssued
	}
	return nil
}

// IsVoided returns true if the receipt was annulled
func (r *Receipt) IsVoided() bool {
	return r.Status == ReceiptStatusVoided
}

// MayEdit returns true if the receipt fields can still change
func (r *Receipt) MayEdit() bool {
	return r.Status == ReceiptStatusIssued
}

// MayVoid returns true if receipt can be voided
func (r *Receipt) MayVoid() bool {
	return r.Status == ReceiptStatusIssued
}

// MayRestore returns true if a voided receipt can be reissued
func (r *Receipt) MayRestore() bool {
	return r.Status == ReceiptStatusVoided
}

// ParsedDate returns Date as a time, or the zero time if it is malformed
func (r *Receipt) ParsedDate() time.Time {
	t, err := time.Parse(ReceiptDateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Version identifies the rendered content of the receipt, used as a cache key
func (r *Receipt) Version() int64 {
	return r.UpdatedAt.UnixNano()
}
