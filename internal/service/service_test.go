package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estate-api/internal/core/auth"
	"estate-api/internal/domain"
	"estate-api/internal/repo"
	"estate-api/pkg/utils"
)

// 每个测试一个独立的共享内存库，连接池里的连接都指向同一份数据
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + utils.NewID() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Listing{},
		&domain.Inquiry{},
		&domain.WishlistItem{},
	))
	return db
}

func newTestJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "estate-api", TTL: time.Hour}
}

type testEnv struct {
	db        *gorm.DB
	users     *UserService
	listings  *ListingService
	inquiries *InquiryService
	wishlist  *WishlistService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()

	userRepo := repo.NewUserRepo(db)
	listingRepo := repo.NewListingRepo(db)
	inquiryRepo := repo.NewInquiryRepo(db)
	wishlistRepo := repo.NewWishlistRepo(db)

	// cache 和邮件都留空：nil 缓存直读 DB，nil 队列静默丢弃
	return &testEnv{
		db:        db,
		users:     NewUserService(userRepo, wishlistRepo, newTestJWTer(), log),
		listings:  NewListingService(listingRepo, nil, nil, "", log),
		inquiries: NewInquiryService(inquiryRepo, listingRepo, nil, log),
		wishlist:  NewWishlistService(wishlistRepo, listingRepo, log),
	}
}

func (e *testEnv) registerUser(t *testing.T, name, phone string) *domain.User {
	t.Helper()
	u, _, err := e.users.Register(context.Background(), RegisterInput{
		Name:     name,
		Phone:    phone,
		Email:    name + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createListing(t *testing.T, owner *domain.User, title string) *domain.Listing {
	t.Helper()
	l, err := e.listings.Create(context.Background(), owner, CreateListingInput{
		Title:       title,
		Type:        domain.ListingTypeApartment,
		BHK:         "2",
		Bathrooms:   2,
		Area:        850,
		Price:       4500000,
		Location:    "Vasai West, Palghar",
		Description: "Well ventilated two bedroom flat close to the station.",
		Status:      domain.ListingStatusSale,
	})
	require.NoError(t, err)
	return l
}
