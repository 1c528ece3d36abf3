package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"travelagency/internal/domain"
)

var ErrDuplicateEnquiry = errors.New("duplicate enquiry")

type EnquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

type enquiryModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	FullName        string    `gorm:"column:full_name"`
	Email           string    `gorm:"column:email"`
	Phone           *string   `gorm:"column:phone"`
	Message         string    `gorm:"column:message"`
	Source          string    `gorm:"column:source"`
	OfferID         *int64    `gorm:"column:offer_id"`
	OfferTitle      *string   `gorm:"column:offer_title"`
	DeliveryChannel string    `gorm:"column:delivery_channel"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (enquiryModel) TableName() string { return "enquiries" }

func toDomainEnquiry(m enquiryModel) *domain.Enquiry {
	var phone, offerTitle string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.OfferTitle != nil {
		offerTitle = *m.OfferTitle
	}

	return &domain.Enquiry{
		ID:              m.ID,
		FullName:        m.FullName,
		Email:           m.Email,
		Phone:           phone,
		Message:         m.Message,
		Source:          m.Source,
		OfferID:         m.OfferID,
		OfferTitle:      offerTitle,
		DeliveryChannel: domain.DeliveryChannel(m.DeliveryChannel),
		Status:          domain.EnquiryStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toEnquiryModel(e *domain.Enquiry) enquiryModel {
	var phone, offerTitle *string
	if e.Phone != "" {
		v := e.Phone
		phone = &v
	}
	if e.OfferTitle != "" {
		v := e.OfferTitle
		offerTitle = &v
	}

	return enquiryModel{
		ID:              e.ID,
		FullName:        e.FullName,
		Email:           e.Email,
		Phone:           phone,
		Message:         e.Message,
		Source:          e.Source,
		OfferID:         e.OfferID,
		OfferTitle:      offerTitle,
		DeliveryChannel: string(e.DeliveryChannel),
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	m := toEnquiryModel(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEnquiry
		}
		return err
	}
	e.ID = m.ID
	return nil
}

func (r *EnquiryRepository) GetByID(ctx context.Context, id int64) (*domain.Enquiry, error) {
	var m enquiryModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainEnquiry(m), nil
}

// List returns enquiries newest first, optionally filtered by status.
func (r *EnquiryRepository) List(ctx context.Context, status *domain.EnquiryStatus, limit, offset int) ([]*domain.Enquiry, int64, error) {
	q := r.db.WithContext(ctx).Model(&enquiryModel{})
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []enquiryModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	enquiries := make([]*domain.Enquiry, 0, len(models))
	for _, m := range models {
		enquiries = append(enquiries, toDomainEnquiry(m))
	}
	return enquiries, total, nil
}

func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id int64, status domain.EnquiryStatus) error {
	return r.db.WithContext(ctx).
		Model(&enquiryModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error
}

type groupCountRow struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// CountByStatus returns enquiry counts per status.
func (r *EnquiryRepository) CountByStatus(ctx context.Context) (map[domain.EnquiryStatus]int64, error) {
	rows, err := r.countGrouped(ctx, "status")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.EnquiryStatus]int64, len(rows))
	for k, v := range rows {
		counts[domain.EnquiryStatus(k)] = v
	}
	return counts, nil
}

// CountByChannel returns enquiry counts per delivery channel. Operators
// watch the fallback share here to spot CRM outages.
func (r *EnquiryRepository) CountByChannel(ctx context.Context) (map[domain.DeliveryChannel]int64, error) {
	rows, err := r.countGrouped(ctx, "delivery_channel")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.DeliveryChannel]int64, len(rows))
	for k, v := range rows {
		counts[domain.DeliveryChannel(k)] = v
	}
	return counts, nil
}

func (r *EnquiryRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	var rows []groupCountRow
	err := r.db.WithContext(ctx).
		Model(&enquiryModel{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
