package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"travelagency/internal/domain"
)

type DestinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

type destinationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Country   string    `gorm:"column:country"`
	Region    *string   `gorm:"column:region"`
	Blurb     *string   `gorm:"column:blurb"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (destinationModel) TableName() string { return "destinations" }

func toDomainDestination(m destinationModel) *domain.Destination {
	var region, blurb string
	if m.Region != nil {
		region = *m.Region
	}
	if m.Blurb != nil {
		blurb = *m.Blurb
	}

	return &domain.Destination{
		ID:        m.ID,
		Name:      m.Name,
		Country:   m.Country,
		Region:    region,
		Blurb:     blurb,
		CreatedAt: m.CreatedAt,
	}
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	var region, blurb *string
	if d.Region != "" {
		v := d.Region
		region = &v
	}
	if d.Blurb != "" {
		v := d.Blurb
		blurb = &v
	}

	m := destinationModel{
		Name:      d.Name,
		Country:   d.Country,
		Region:    region,
		Blurb:     blurb,
		CreatedAt: d.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	d.ID = m.ID
	return nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]*domain.Destination, error) {
	var models []destinationModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	destinations := make([]*domain.Destination, 0, len(models))
	for _, m := range models {
		destinations = append(destinations, toDomainDestination(m))
	}
	return destinations, nil
}
