package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"gorm.io/gorm"
)

// ReceiptQuery narrows a receipt listing
type ReceiptQuery struct {
	*ListQuery
	Status   string
	DateFrom string // YYYY-MM-DD, inclusive
	DateTo   string // YYYY-MM-DD, inclusive
}

// ReceiptRepository defines the interface for receipt data access
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	Update(ctx context.Context, receipt *models.Receipt) error
	FindByID(ctx context.Context, id uint) (*models.Receipt, error)
	FindByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Receipt, error)
	List(ctx context.Context, query *ReceiptQuery) ([]models.Receipt, int64, error)
}

var receiptSortColumns = map[string]bool{
	"number":        true,
	"date":          true,
	"amount":        true,
	"received_from": true,
	"created_at":    true,
}

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		if isDuplicateKeyError(err, "receipts_number_key") {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *receiptRepository) Update(ctx context.Context, receipt *models.Receipt) error {
	if err := r.db.WithContext(ctx).Save(receipt).Error; err != nil {
		if isDuplicateKeyError(err, "receipts_number_key") {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *receiptRepository) FindByID(ctx context.Context, id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) List(ctx context.Context, query *ReceiptQuery) ([]models.Receipt, int64, error) {
	var receipts []models.Receipt
	var total int64

	if query.ListQuery == nil {
		query.ListQuery = NewListQuery()
	}
	query.Normalize()

	db := r.db.WithContext(ctx).Model(&models.Receipt{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("number ILIKE ? OR received_from ILIKE ? OR concept ILIKE ?", search, search, search)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.DateFrom != "" {
		db = db.Where("date >= ?", query.DateFrom)
	}
	if query.DateTo != "" {
		db = db.Where("date <= ?", query.DateTo)
	}
	if query.Filters["created_by"] != "" {
		db = db.Where("created_by = ?", query.Filters["created_by"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order(query.orderClause(receiptSortColumns, "date DESC, id DESC"))

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&receipts).Error
	return receipts, total, err
}
