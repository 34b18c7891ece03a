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

type InquiryHandler struct {
	inquiries *service.InquiryService
	log       *zap.Logger
}

func NewInquiryHandler(inquiries *service.InquiryService, log *zap.Logger) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries, log: log}
}

type submitInquiryReq struct {
	Name    string `json:"name" binding:"required,min=2,max=50"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,phone"`
	Message string `json:"message" binding:"required,min=10,max=1000"`
}

type respondReq struct {
	Response string `json:"response"`
}

// Submit 公开接口，无需登录
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req submitInquiryReq
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.inquiries.Submit(c.Request.Context(), c.Param("id"), service.InquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrListingNotAvailable):
		resp.Fail(c, http.StatusBadRequest, "Property is not available for inquiries")
	case err != nil:
		h.log.Error("submit inquiry failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while sending inquiry")
	default:
		resp.OK(c, http.StatusCreated, "Inquiry sent successfully! The property owner will contact you soon.", gin.H{"inquiry": q})
	}
}

// ListForProperty 只有房源业主能看
func (h *InquiryHandler) ListForProperty(c *gin.Context) {
	u := middleware.CurrentUser(c)
	items, err := h.inquiries.ListForListing(c.Request.Context(), u, c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, http.StatusForbidden, "Access denied. You can only view inquiries for your own properties.")
	case err != nil:
		h.log.Error("fetch property inquiries failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching inquiries")
	default:
		resp.OK(c, http.StatusOK, "", gin.H{"inquiries": items})
	}
}

// MyInquiries 业主全部房源下的询盘
func (h *InquiryHandler) MyInquiries(c *gin.Context) {
	u := middleware.CurrentUser(c)
	items, err := h.inquiries.ListMine(c.Request.Context(), u)
	if err != nil {
		h.log.Error("fetch own inquiries failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching your inquiries")
		return
	}
	resp.OK(c, http.StatusOK, "", gin.H{"inquiries": items})
}

func (h *InquiryHandler) Respond(c *gin.Context) {
	var req respondReq
	if !bindJSON(c, &req) {
		return
	}

	u := middleware.CurrentUser(c)
	q, err := h.inquiries.Respond(c.Request.Context(), u, c.Param("id"), req.Response)
	switch {
	case errors.Is(err, domain.ErrEmptyResponse):
		resp.Fail(c, http.StatusBadRequest, "Response message is required")
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Inquiry not found")
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, http.StatusForbidden, "Access denied. You can only respond to inquiries for your own properties.")
	case err != nil:
		h.log.Error("respond to inquiry failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while responding to inquiry")
	default:
		resp.OK(c, http.StatusOK, "Response sent successfully", gin.H{"inquiry": q})
	}
}
