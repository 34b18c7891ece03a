package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estate-api/internal/core/auth"
	"estate-api/internal/core/config"
	"estate-api/internal/domain"
	"estate-api/pkg/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	return NewEngine(Deps{
		Log: zap.NewNop(),
		DB:  db,
		JWT: &auth.JWTer{Secret: []byte("test-secret"), Issuer: "estate-api", TTL: time.Hour},
		Cfg: &config.Config{},
	})
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func register(t *testing.T, r *gin.Engine, name, phone string) (userID, token string) {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"phone":    phone,
		"email":    name + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.User.ID, data.Token
}

func createProperty(t *testing.T, r *gin.Engine, token, title string) domain.Listing {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/properties", token, gin.H{
		"title":       title,
		"type":        "apartment",
		"bhk":         "2",
		"bathrooms":   2,
		"area":        850,
		"price":       4500000,
		"location":    "Vasai West, Palghar",
		"description": "Well ventilated two bedroom flat close to the station.",
		"status":      "sale",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Property domain.Listing `json:"property"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Property
}

func TestFullListingAndInquiryFlow(t *testing.T) {
	r := newTestEngine(t)

	_, ownerToken := register(t, r, "asha", "9876543210")
	l := createProperty(t, r, ownerToken, "Spacious 2BHK in Vasai West")
	assert.True(t, l.IsApproved)

	// 公开搜索立即可见
	w, env := do(t, r, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var search struct {
		Properties []domain.Listing `json:"properties"`
		Pagination struct {
			CurrentPage     int   `json:"currentPage"`
			TotalPages      int   `json:"totalPages"`
			TotalProperties int64 `json:"totalProperties"`
			HasNext         bool  `json:"hasNext"`
			HasPrev         bool  `json:"hasPrev"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &search))
	require.Len(t, search.Properties, 1)
	assert.Equal(t, 1, search.Pagination.CurrentPage)
	assert.Equal(t, int64(1), search.Pagination.TotalProperties)
	assert.False(t, search.Pagination.HasNext)

	// 买家无需登录即可发询盘
	w, env = do(t, r, http.MethodPost, "/api/inquiries/property/"+l.ID, "", gin.H{
		"name":    "Ravi",
		"email":   "ravi@example.com",
		"phone":   "9999999999",
		"message": "Is this property still available?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 业主在 my-inquiries 看到 pending
	w, env = do(t, r, http.MethodGet, "/api/inquiries/my-inquiries", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inqs struct {
		Inquiries []domain.Inquiry `json:"inquiries"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &inqs))
	require.Len(t, inqs.Inquiries, 1)
	assert.Equal(t, domain.InquiryStatusPending, inqs.Inquiries[0].Status)
	assert.Equal(t, "9999999999", inqs.Inquiries[0].Phone)

	// /me 别名给同样的数据
	w, env = do(t, r, http.MethodGet, "/api/inquiries/me", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &inqs))
	require.Len(t, inqs.Inquiries, 1)

	// 回复后状态翻转
	w, env = do(t, r, http.MethodPut, "/api/inquiries/"+inqs.Inquiries[0].ID+"/respond", ownerToken, gin.H{
		"response": "Yes, call me after 6pm.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var responded struct {
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &responded))
	assert.Equal(t, domain.InquiryStatusResponded, responded.Inquiry.Status)
	assert.Equal(t, "Yes, call me after 6pm.", responded.Inquiry.Response)
	require.NotNil(t, responded.Inquiry.RespondedAt)
}

func TestAuthGuards(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied. No token provided.", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token.", env.Message)
}

func TestRegisterValidationEnvelope(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "A",
		"phone":    "0123",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	assert.NotEmpty(t, env.Errors)
}

func TestLoginWrongPasswordMatchesUnknownPhone(t *testing.T) {
	r := newTestEngine(t)
	register(t, r, "asha", "9876543210")

	w1, env1 := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"phone": "9876543210", "password": "wrong-password",
	})
	w2, env2 := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"phone": "9000000000", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestUpdateHidesListingFromPublicDetail(t *testing.T) {
	r := newTestEngine(t)

	_, token := register(t, r, "asha", "9876543210")
	l := createProperty(t, r, token, "Spacious 2BHK in Vasai West")

	w, _ := do(t, r, http.MethodGet, "/api/properties/"+l.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/properties/"+l.ID, token, gin.H{"price": 4700000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := do(t, r, http.MethodGet, "/api/properties/"+l.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Property not found", env.Message)

	// 业主自查不受审核状态影响
	w, env = do(t, r, http.MethodGet, "/api/properties/user/my-properties", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Properties []domain.Listing `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine.Properties, 1)
	assert.False(t, mine.Properties[0].IsApproved)
}

func TestWishlistToggleRoutes(t *testing.T) {
	r := newTestEngine(t)

	_, ownerToken := register(t, r, "asha", "9876543210")
	_, buyerToken := register(t, r, "ravi", "9123456789")
	l := createProperty(t, r, ownerToken, "Spacious 2BHK in Vasai West")

	w, env := do(t, r, http.MethodPost, "/api/properties/"+l.ID+"/wishlist", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Property added to wishlist", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/properties/user/wishlist", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wl struct {
		Wishlist []domain.Listing `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wl))
	require.Len(t, wl.Wishlist, 1)

	w, env = do(t, r, http.MethodPost, "/api/properties/"+l.ID+"/wishlist", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Property removed from wishlist", env.Message)
}

func TestNoRouteReturnsJSON404(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "API endpoint not found", env.Message)
}

func TestHealthAndWelcome(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = do(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.Message, "Welcome")
}
