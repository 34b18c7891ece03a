package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"estate-api/internal/domain"
	"estate-api/internal/notify"
	"estate-api/internal/repo"
	"estate-api/pkg/utils"
)

type InquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type InquiryService struct {
	inquiries *repo.InquiryRepo
	listings  *repo.ListingRepo
	mail      *notify.Dispatcher
	log       *zap.Logger
}

func NewInquiryService(inquiries *repo.InquiryRepo, listings *repo.ListingRepo, mail *notify.Dispatcher, log *zap.Logger) *InquiryService {
	return &InquiryService{inquiries: inquiries, listings: listings, mail: mail, log: log}
}

// Submit 公开提交询盘；房源必须可见。业主邮件为尽力投递，不影响返回。
func (s *InquiryService) Submit(ctx context.Context, listingID string, in InquiryInput) (*domain.Inquiry, error) {
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if !l.Visible() {
		return nil, domain.ErrListingNotAvailable
	}

	q := &domain.Inquiry{
		ID:        utils.NewID(),
		ListingID: listingID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		Status:    domain.InquiryStatusPending,
	}
	if err := s.inquiries.Create(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("inquiry submitted", zap.String("inquiry_id", q.ID), zap.String("listing_id", listingID))

	if l.OwnerEmail != "" {
		s.mail.Enqueue(notify.NewInquiryReceived(l, q))
	}
	return q, nil
}

// ListForListing 只有房源业主能看
func (s *InquiryService) ListForListing(ctx context.Context, requester *domain.User, listingID string) ([]domain.Inquiry, error) {
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.OwnerID != requester.ID {
		return nil, domain.ErrForbidden
	}
	return s.inquiries.ByListing(ctx, listingID)
}

// ListMine 业主全部房源下的询盘，最新在前
func (s *InquiryService) ListMine(ctx context.Context, requester *domain.User) ([]domain.Inquiry, error) {
	ids, err := s.listings.IDsByOwner(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	return s.inquiries.ByListingIDs(ctx, ids)
}

// Respond pending → responded；closed 状态没有任何入口会写（见 DESIGN.md）
func (s *InquiryService) Respond(ctx context.Context, requester *domain.User, inquiryID, response string) (*domain.Inquiry, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.ErrEmptyResponse
	}

	q, err := s.inquiries.FindByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.Listing == nil || q.Listing.OwnerID != requester.ID {
		return nil, domain.ErrForbidden
	}

	if err := s.inquiries.Respond(ctx, inquiryID, response, time.Now()); err != nil {
		return nil, err
	}
	return s.inquiries.FindByID(ctx, inquiryID)
}
