package catalog

import (
	"context"
	"errors"

	"travelagency/internal/domain"
	"travelagency/internal/repository"
)

var ErrOfferNotFound = errors.New("offer not found")

type Service struct {
	offers       *repository.OfferRepository
	destinations *repository.DestinationRepository
}

func NewService(offers *repository.OfferRepository, destinations *repository.DestinationRepository) *Service {
	return &Service{
		offers:       offers,
		destinations: destinations,
	}
}

func (s *Service) ListOffers(ctx context.Context, featuredOnly bool, limit, offset int) ([]*domain.Offer, error) {
	return s.offers.List(ctx, featuredOnly, limit, offset)
}

func (s *Service) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

func (s *Service) ListDestinations(ctx context.Context) ([]*domain.Destination, error) {
	return s.destinations.List(ctx)
}
