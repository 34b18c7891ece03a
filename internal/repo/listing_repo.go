package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"estate-api/internal/domain"
)

// 排序字段白名单，避免把请求参数直接拼进 ORDER BY
var listingSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"area":      "area",
	"views":     "views",
	"rating":    "rating",
	"title":     "title",
}

type ListingRepo struct{ db *gorm.DB }

func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepo) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

// Search 公开搜索：基底永远是 approved AND active，其余条件按需叠加。
// 返回当前页数据 + 不分页的总数。
func (r *ListingRepo) Search(ctx context.Context, c domain.ListingSearch) ([]domain.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("is_approved = ? AND is_active = ?", true, true)

	if c.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(c.Location)+"%")
	}
	if c.Type != "" && c.Type != "all" {
		q = q.Where("type = ?", c.Type)
	}
	if c.BHK != "" && c.BHK != "all" {
		q = q.Where("bhk = ?", c.BHK)
	}
	if c.Status != "" {
		q = q.Where("status = ?", c.Status)
	}
	if c.MinPrice > 0 {
		q = q.Where("price >= ?", c.MinPrice)
	}
	if c.MaxPrice > 0 {
		q = q.Where("price <= ?", c.MaxPrice)
	}
	if s := strings.TrimSpace(c.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := listingSortColumns[c.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(c.SortOrder, "asc") {
		dir = "ASC"
	}

	page := c.Page
	if page <= 0 {
		page = 1
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 12
	}

	var items []domain.Listing
	err := q.Order(col + " " + dir).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	return items, total, err
}

// ByOwner 业主视角不过滤 approved/active
func (r *ListingRepo) ByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	var items []domain.Listing
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *ListingRepo) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Listing{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

// Update 用 map 更新，保证 is_approved=false 这类零值也能写进去
func (r *ListingRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.Listing{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Listing{}, "id = ?", id).Error
}

// IncrementViews 非关键计数器，不做乐观锁
func (r *ListingRepo) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Listing{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
