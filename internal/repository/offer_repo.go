package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"travelagency/internal/domain"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

type offerModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Title        string    `gorm:"column:title"`
	Destination  string    `gorm:"column:destination"`
	Summary      *string   `gorm:"column:summary"`
	PriceFrom    float64   `gorm:"column:price_from"`
	DurationDays int       `gorm:"column:duration_days"`
	Featured     bool      `gorm:"column:featured"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (offerModel) TableName() string { return "offers" }

func toDomainOffer(m offerModel) *domain.Offer {
	var summary string
	if m.Summary != nil {
		summary = *m.Summary
	}

	return &domain.Offer{
		ID:           m.ID,
		Title:        m.Title,
		Destination:  m.Destination,
		Summary:      summary,
		PriceFrom:    m.PriceFrom,
		DurationDays: m.DurationDays,
		Featured:     m.Featured,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toOfferModel(o *domain.Offer) offerModel {
	var summary *string
	if o.Summary != "" {
		v := o.Summary
		summary = &v
	}

	return offerModel{
		ID:           o.ID,
		Title:        o.Title,
		Destination:  o.Destination,
		Summary:      summary,
		PriceFrom:    o.PriceFrom,
		DurationDays: o.DurationDays,
		Featured:     o.Featured,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	m := toOfferModel(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	o.ID = m.ID
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var m offerModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainOffer(m), nil
}

// List returns offers, optionally only featured ones, newest first.
func (r *OfferRepository) List(ctx context.Context, featuredOnly bool, limit, offset int) ([]*domain.Offer, error) {
	q := r.db.WithContext(ctx).Model(&offerModel{})
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}

	var models []offerModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, err
	}

	offers := make([]*domain.Offer, 0, len(models))
	for _, m := range models {
		offers = append(offers, toDomainOffer(m))
	}
	return offers, nil
}
