package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"estate-api/internal/core/auth"
	"estate-api/internal/domain"
	"estate-api/internal/repo"
	"estate-api/pkg/utils"
)

type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

type UserService struct {
	users    *repo.UserRepo
	wishlist *repo.WishlistRepo
	jwt      *auth.JWTer
	log      *zap.Logger
}

func NewUserService(users *repo.UserRepo, wishlist *repo.WishlistRepo, jwt *auth.JWTer, log *zap.Logger) *UserService {
	return &UserService{users: users, wishlist: wishlist, jwt: jwt, log: log}
}

// Register 先查重再插入；并发窗口由 phone 唯一索引兜底（repo 把冲突转 ErrDuplicatePhone）
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if existing, err := s.users.FindByPhone(ctx, in.Phone); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", domain.ErrDuplicatePhone
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		if existing, err := s.users.FindByEmail(ctx, email); err != nil {
			return nil, "", err
		} else if existing != nil {
			return nil, "", domain.ErrDuplicateEmail
		}
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, token, nil
}

// Login 仅按手机号登录；号码先归一化成纯数字。
// 查无此号和密码错误返回同一个错误，避免探测账号是否存在。
func (s *UserService) Login(ctx context.Context, phone, password string) (*domain.User, string, error) {
	u, err := s.users.FindByPhoneWithSecret(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := VerifyPassword(u, password); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	u.PasswordHash = ""
	return u, token, nil
}

// VerifyPassword 防御默认投影不带密文的情况
func VerifyPassword(u *domain.User, candidate string) error {
	if candidate == "" {
		return domain.ErrNoPasswordProvided
	}
	if u.PasswordHash == "" {
		return domain.ErrNoPasswordOnRecord
	}
	if !utils.CheckPassword(candidate, u.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Me 当前用户 + 收藏夹（只含可见房源）
func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, []domain.Listing, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, domain.ErrNotFound
	}
	wl, err := s.wishlist.Listings(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return u, wl, nil
}

// UpdateProfile 只更新传入的字段
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name, phone *string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	fields := map[string]any{}
	if name != nil && strings.TrimSpace(*name) != "" {
		fields["name"] = strings.TrimSpace(*name)
	}
	if phone != nil && strings.TrimSpace(*phone) != "" {
		fields["phone"] = strings.TrimSpace(*phone)
	}
	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}
