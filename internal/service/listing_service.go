package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"estate-api/internal/core/cache"
	"estate-api/internal/domain"
	"estate-api/internal/notify"
	"estate-api/internal/repo"
	"estate-api/pkg/utils"
)

const listingCacheTTL = 5 * time.Minute

type CreateListingInput struct {
	Title        string
	Type         string
	BHK          string
	Bathrooms    int
	Area         int
	Price        int64
	Location     string
	Description  string
	Status       string
	Images       []string
	Amenities    []string
	Features     []string
	NearbyPlaces []string
	Latitude     *float64
	Longitude    *float64
}

// UpdateListingInput 全部可选，只更新非 nil 字段
type UpdateListingInput struct {
	Title        *string
	Type         *string
	BHK          *string
	Bathrooms    *int
	Area         *int
	Price        *int64
	Location     *string
	Description  *string
	Status       *string
	Images       []string
	Amenities    []string
	Features     []string
	NearbyPlaces []string
}

type SearchResult struct {
	Items      []domain.Listing
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type ListingService struct {
	listings *repo.ListingRepo
	cache    *cache.Cache
	mail     *notify.Dispatcher
	adminTo  string
	log      *zap.Logger
}

func NewListingService(listings *repo.ListingRepo, c *cache.Cache, mail *notify.Dispatcher, adminTo string, log *zap.Logger) *ListingService {
	return &ListingService{listings: listings, cache: c, mail: mail, adminTo: adminTo, log: log}
}

func listingCacheKey(id string) string { return "listing:" + id }

// Search 分页契约：返回 min(limit, remaining) 条 + 不分页总数
func (s *ListingService) Search(ctx context.Context, crit domain.ListingSearch) (*SearchResult, error) {
	if crit.Page <= 0 {
		crit.Page = 1
	}
	if crit.Limit <= 0 {
		crit.Limit = 12
	}

	items, total, err := s.listings.Search(ctx, crit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(crit.Limit) - 1) / int64(crit.Limit))
	return &SearchResult{
		Items:      items,
		Total:      total,
		Page:       crit.Page,
		Limit:      crit.Limit,
		TotalPages: totalPages,
		HasNext:    crit.Page < totalPages,
		HasPrev:    crit.Page > 1,
	}, nil
}

// Create 立即上架：自动 approved + active，业主信息从登录用户快照
func (s *ListingService) Create(ctx context.Context, owner *domain.User, in CreateListingInput) (*domain.Listing, error) {
	images := in.Images
	if len(images) == 0 {
		images = []string{domain.DefaultImageURL}
	}

	l := &domain.Listing{
		ID:           utils.NewID(),
		Title:        in.Title,
		Type:         in.Type,
		BHK:          in.BHK,
		Bathrooms:    in.Bathrooms,
		Area:         in.Area,
		Price:        in.Price,
		Location:     in.Location,
		Description:  in.Description,
		Status:       in.Status,
		Images:       images,
		Amenities:    in.Amenities,
		Features:     in.Features,
		NearbyPlaces: in.NearbyPlaces,
		OwnerID:      owner.ID,
		OwnerName:    owner.Name,
		OwnerPhone:   owner.Phone,
		OwnerEmail:   owner.Email,
		IsApproved:   true,
		IsActive:     true,
		Rating:       4.8,
		Latitude:     19.4617,
		Longitude:    72.7869,
	}
	if in.Latitude != nil {
		l.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = *in.Longitude
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("listing created", zap.String("listing_id", l.ID), zap.String("owner_id", owner.ID))

	if s.adminTo != "" {
		s.mail.Enqueue(notify.NewListingSubmitted(l, s.adminTo))
	}
	if l.OwnerEmail != "" {
		s.mail.Enqueue(notify.NewListingConfirmation(l))
	}
	return l, nil
}

// GetPublic 公开详情：未审核/下架一律 404（业主也不例外，业主走 my-properties）。
// 每次命中浏览数 +1，计数丢失可接受。
func (s *ListingService) GetPublic(ctx context.Context, id string) (*domain.Listing, error) {
	l, err := cache.GetOrLoadJSON[domain.Listing](s.cache, ctx, listingCacheKey(id), listingCacheTTL,
		func(ctx context.Context) (*domain.Listing, error) {
			found, err := s.listings.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if found == nil || !found.Visible() {
				return nil, domain.ErrNotFound
			}
			return found, nil
		})
	if err != nil {
		return nil, err
	}
	if l == nil || !l.Visible() {
		return nil, domain.ErrNotFound
	}

	if err := s.listings.IncrementViews(ctx, id); err != nil {
		s.log.Warn("view counter increment failed", zap.String("listing_id", id), zap.Error(err))
	} else {
		l.Views++
	}
	return l, nil
}

// Update 仅业主可改；任何修改都把 is_approved 打回 false 等待复审
// （与创建时的自动过审并存，历史如此，保持原样）
func (s *ListingService) Update(ctx context.Context, requester *domain.User, id string, in UpdateListingInput) (*domain.Listing, error) {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.OwnerID != requester.ID {
		return nil, domain.ErrForbidden
	}

	fields := map[string]any{"is_approved": false}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.BHK != nil {
		fields["bhk"] = *in.BHK
	}
	if in.Bathrooms != nil {
		fields["bathrooms"] = *in.Bathrooms
	}
	if in.Area != nil {
		fields["area"] = *in.Area
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Images != nil {
		fields["images"] = domain.StringList(in.Images)
	}
	if in.Amenities != nil {
		fields["amenities"] = domain.StringList(in.Amenities)
	}
	if in.Features != nil {
		fields["features"] = domain.StringList(in.Features)
	}
	if in.NearbyPlaces != nil {
		fields["nearby_places"] = domain.StringList(in.NearbyPlaces)
	}

	if err := s.listings.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, listingCacheKey(id))
	return s.listings.FindByID(ctx, id)
}

func (s *ListingService) Delete(ctx context.Context, requester *domain.User, id string) error {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	if l.OwnerID != requester.ID {
		return domain.ErrForbidden
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, listingCacheKey(id))
	return nil
}

// MyListings 业主自查，不过滤审核状态
func (s *ListingService) MyListings(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	return s.listings.ByOwner(ctx, ownerID)
}
