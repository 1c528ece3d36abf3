package admin

import "travelagency/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	Admin *domain.AdminUser `json:"admin"`
}

type UpdateEnquiryStatusRequest struct {
	Status domain.EnquiryStatus `json:"status" validate:"required,oneof=new contacted closed"`
}

type EnquiryListResponse struct {
	Enquiries []*domain.Enquiry `json:"enquiries"`
	Total     int64             `json:"total"`
}

// StatsResponse aggregates enquiry counts. ByChannel is the operational
// signal: a growing fallback share means the CRM is struggling.
type StatsResponse struct {
	ByStatus  map[domain.EnquiryStatus]int64   `json:"by_status"`
	ByChannel map[domain.DeliveryChannel]int64 `json:"by_channel"`
}
