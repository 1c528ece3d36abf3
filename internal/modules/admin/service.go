package admin

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"travelagency/internal/domain"
)

type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

type EnquiryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Enquiry, error)
	List(ctx context.Context, status *domain.EnquiryStatus, limit, offset int) ([]*domain.Enquiry, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnquiryStatus) error
	CountByStatus(ctx context.Context) (map[domain.EnquiryStatus]int64, error)
	CountByChannel(ctx context.Context) (map[domain.DeliveryChannel]int64, error)
}

type tokenIssuer interface {
	GenerateToken(adminID int64, role string) (string, error)
}

// Service contains the back-office business logic.
type Service struct {
	admins    AdminUserRepository
	enquiries EnquiryRepository
	jwt       tokenIssuer
}

func NewService(admins AdminUserRepository, enquiries EnquiryRepository, jwt tokenIssuer) *Service {
	return &Service{
		admins:    admins,
		enquiries: enquiries,
		jwt:       jwt,
	}
}

// Login verifies the password and issues an access token. The error is
// identical for unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.AdminUser, string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if admin == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (s *Service) ListEnquiries(ctx context.Context, status *domain.EnquiryStatus, limit, offset int) ([]*domain.Enquiry, int64, error) {
	return s.enquiries.List(ctx, status, limit, offset)
}

func (s *Service) UpdateEnquiryStatus(ctx context.Context, id int64, status domain.EnquiryStatus) error {
	switch status {
	case domain.EnquiryNew, domain.EnquiryContacted, domain.EnquiryClosed:
	default:
		return ErrInvalidStatus
	}

	e, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrEnquiryNotFound
	}

	return s.enquiries.UpdateStatus(ctx, id, status)
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	byStatus, err := s.enquiries.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byChannel, err := s.enquiries.CountByChannel(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		ByStatus:  byStatus,
		ByChannel: byChannel,
	}, nil
}
