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

type WishlistHandler struct {
	wishlist *service.WishlistService
	log      *zap.Logger
}

func NewWishlistHandler(wishlist *service.WishlistService, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, log: log}
}

// Toggle 收藏/取消之间翻转；不可见房源按不存在处理
func (h *WishlistHandler) Toggle(c *gin.Context) {
	u := middleware.CurrentUser(c)
	added, err := h.wishlist.Toggle(c.Request.Context(), u.ID, c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrListingNotAvailable):
		resp.Fail(c, http.StatusNotFound, "Property not available")
	case err != nil:
		h.log.Error("wishlist toggle failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while updating wishlist")
	case added:
		resp.OK(c, http.StatusOK, "Property added to wishlist", gin.H{"inWishlist": true})
	default:
		resp.OK(c, http.StatusOK, "Property removed from wishlist", gin.H{"inWishlist": false})
	}
}

func (h *WishlistHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	items, err := h.wishlist.List(c.Request.Context(), u.ID)
	if err != nil {
		h.log.Error("fetch wishlist failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching wishlist")
		return
	}
	resp.OK(c, http.StatusOK, "", gin.H{"wishlist": items})
}
