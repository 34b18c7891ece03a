package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate-api/internal/domain"
	"estate-api/internal/service"
	"estate-api/internal/transport/http/middleware"
	resp "estate-api/internal/transport/http/response"
)

type AuthHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *service.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

type registerReq struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Phone    string `json:"phone" binding:"required,phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginReq struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileReq struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !bindJSON(c, &req) {
		return
	}

	u, token, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicatePhone):
		resp.Fail(c, http.StatusBadRequest, "User with this phone number already exists")
	case errors.Is(err, domain.ErrDuplicateEmail):
		resp.Fail(c, http.StatusBadRequest, "User with this email already exists")
	case err != nil:
		h.log.Error("register failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error during registration")
	default:
		resp.OK(c, http.StatusCreated, "User registered successfully", gin.H{"user": u, "token": token})
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}

	u, token, err := h.users.Login(c.Request.Context(), req.Phone, req.Password)
	switch {
	// 查无此号、密码错、历史记录无密文：同一句话，不给探测空间
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoPasswordProvided),
		errors.Is(err, domain.ErrNoPasswordOnRecord):
		resp.Fail(c, http.StatusUnauthorized, "Invalid phone number or password")
	case err != nil:
		h.log.Error("login failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error during login")
	default:
		resp.OK(c, http.StatusOK, "Login successful", gin.H{"user": u, "token": token})
	}
}

func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	user, wishlist, err := h.users.Me(c.Request.Context(), u.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "User not found")
	case err != nil:
		h.log.Error("fetch current user failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching user data")
	default:
		resp.OK(c, http.StatusOK, "", gin.H{"user": user, "wishlist": wishlist})
	}
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if !bindJSON(c, &req) {
		return
	}

	u := middleware.CurrentUser(c)
	user, err := h.users.UpdateProfile(c.Request.Context(), u.ID, req.Name, req.Phone)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrDuplicatePhone):
		resp.Fail(c, http.StatusBadRequest, "User with this phone number already exists")
	case err != nil:
		h.log.Error("update profile failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while updating profile")
	default:
		resp.OK(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
	}
}
