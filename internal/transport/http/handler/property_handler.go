package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate-api/internal/domain"
	"estate-api/internal/service"
	"estate-api/internal/transport/http/middleware"
	resp "estate-api/internal/transport/http/response"
)

type PropertyHandler struct {
	listings *service.ListingService
	log      *zap.Logger
}

func NewPropertyHandler(listings *service.ListingService, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{listings: listings, log: log}
}

type createPropertyReq struct {
	Title        string   `json:"title" binding:"required,min=5,max=100"`
	Type         string   `json:"type" binding:"required,oneof=apartment house villa commercial"`
	BHK          string   `json:"bhk" binding:"required,oneof=1 2 3 4 5"`
	Bathrooms    int      `json:"bathrooms" binding:"required,min=1,max=10"`
	Area         int      `json:"area" binding:"required,min=100,max=50000"`
	Price        int64    `json:"price" binding:"required,min=1000,max=1000000000"`
	Location     string   `json:"location" binding:"required,min=5,max=100"`
	Description  string   `json:"description" binding:"required,min=20,max=1000"`
	Status       string   `json:"status" binding:"required,oneof=sale rent"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	Features     []string `json:"features"`
	NearbyPlaces []string `json:"nearbyPlaces"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type updatePropertyReq struct {
	Title        *string  `json:"title" binding:"omitempty,min=5,max=100"`
	Type         *string  `json:"type" binding:"omitempty,oneof=apartment house villa commercial"`
	BHK          *string  `json:"bhk" binding:"omitempty,oneof=1 2 3 4 5"`
	Bathrooms    *int     `json:"bathrooms" binding:"omitempty,min=1,max=10"`
	Area         *int     `json:"area" binding:"omitempty,min=100,max=50000"`
	Price        *int64   `json:"price" binding:"omitempty,min=1000,max=1000000000"`
	Location     *string  `json:"location" binding:"omitempty,min=5,max=100"`
	Description  *string  `json:"description" binding:"omitempty,min=20,max=1000"`
	Status       *string  `json:"status" binding:"omitempty,oneof=sale rent"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	Features     []string `json:"features"`
	NearbyPlaces []string `json:"nearbyPlaces"`
}

// List 公开搜索，只出已审核且在架的房源
func (h *PropertyHandler) List(c *gin.Context) {
	crit := domain.ListingSearch{
		Location:  c.Query("location"),
		Type:      c.Query("type"),
		BHK:       c.Query("bhk"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}
	crit.Page, _ = strconv.Atoi(c.Query("page"))
	crit.Limit, _ = strconv.Atoi(c.Query("limit"))
	crit.MinPrice, _ = strconv.ParseInt(c.Query("minPrice"), 10, 64)
	crit.MaxPrice, _ = strconv.ParseInt(c.Query("maxPrice"), 10, 64)

	res, err := h.listings.Search(c.Request.Context(), crit)
	if err != nil {
		h.log.Error("property search failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching properties")
		return
	}
	resp.OK(c, http.StatusOK, "", gin.H{
		"properties": res.Items,
		"pagination": gin.H{
			"currentPage":     res.Page,
			"totalPages":      res.TotalPages,
			"totalProperties": res.Total,
			"hasNext":         res.HasNext,
			"hasPrev":         res.HasPrev,
		},
	})
}

// Get 公开详情：未审核/下架一律 404，每次命中浏览数 +1
func (h *PropertyHandler) Get(c *gin.Context) {
	l, err := h.listings.GetPublic(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Property not found")
	case err != nil:
		h.log.Error("fetch property failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching property")
	default:
		resp.OK(c, http.StatusOK, "", gin.H{"property": l})
	}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req createPropertyReq
	if !bindJSON(c, &req) {
		return
	}

	u := middleware.CurrentUser(c)
	l, err := h.listings.Create(c.Request.Context(), u, service.CreateListingInput{
		Title:        req.Title,
		Type:         req.Type,
		BHK:          req.BHK,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		Price:        req.Price,
		Location:     req.Location,
		Description:  req.Description,
		Status:       req.Status,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Features:     req.Features,
		NearbyPlaces: req.NearbyPlaces,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		h.log.Error("create property failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while creating property listing")
		return
	}
	resp.OK(c, http.StatusCreated, "Property listed successfully and is now live on the website!", gin.H{"property": l})
}

// Update 任何修改都会把房源打回待审核
func (h *PropertyHandler) Update(c *gin.Context) {
	var req updatePropertyReq
	if !bindJSON(c, &req) {
		return
	}

	u := middleware.CurrentUser(c)
	l, err := h.listings.Update(c.Request.Context(), u, c.Param("id"), service.UpdateListingInput{
		Title:        req.Title,
		Type:         req.Type,
		BHK:          req.BHK,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		Price:        req.Price,
		Location:     req.Location,
		Description:  req.Description,
		Status:       req.Status,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Features:     req.Features,
		NearbyPlaces: req.NearbyPlaces,
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, http.StatusForbidden, "Access denied. You can only update your own properties.")
	case err != nil:
		h.log.Error("update property failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while updating property")
	default:
		resp.OK(c, http.StatusOK, "Property updated successfully and is pending re-approval", gin.H{"property": l})
	}
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	err := h.listings.Delete(c.Request.Context(), u, c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, http.StatusForbidden, "Access denied. You can only delete your own properties.")
	case err != nil:
		h.log.Error("delete property failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while deleting property")
	default:
		resp.OK(c, http.StatusOK, "Property deleted successfully", nil)
	}
}

// MyProperties 业主自查，审核状态不过滤
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	u := middleware.CurrentUser(c)
	items, err := h.listings.MyListings(c.Request.Context(), u.ID)
	if err != nil {
		h.log.Error("fetch own properties failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Server error while fetching your properties")
		return
	}
	resp.OK(c, http.StatusOK, "", gin.H{"properties": items})
}
