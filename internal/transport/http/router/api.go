package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estate-api/internal/core/auth"
	"estate-api/internal/core/cache"
	"estate-api/internal/core/config"
	"estate-api/internal/notify"
	"estate-api/internal/repo"
	"estate-api/internal/service"
	"estate-api/internal/transport/http/handler"
	mdw "estate-api/internal/transport/http/middleware"
	resp "estate-api/internal/transport/http/response"
)

type Deps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	JWT   *auth.JWTer
	Cache *cache.Cache // 可为 nil，读写直接打 DB
	Mail  *notify.Dispatcher
	Cfg   *config.Config
}

func NewEngine(d Deps) *gin.Engine {
	handler.RegisterValidations()

	r := gin.New()
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(10<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	corsCfg := cors.DefaultConfig()
	if d.Cfg.CORS.AllowOrigin != "" {
		corsCfg.AllowOrigins = []string{d.Cfg.CORS.AllowOrigin}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// 组装
	users := repo.NewUserRepo(d.DB)
	listings := repo.NewListingRepo(d.DB)
	inquiries := repo.NewInquiryRepo(d.DB)
	wishlist := repo.NewWishlistRepo(d.DB)

	userSvc := service.NewUserService(users, wishlist, d.JWT, d.Log)
	listingSvc := service.NewListingService(listings, d.Cache, d.Mail, d.Cfg.SMTP.AdminTo, d.Log)
	inquirySvc := service.NewInquiryService(inquiries, listings, d.Mail, d.Log)
	wishlistSvc := service.NewWishlistService(wishlist, listings, d.Log)

	authH := handler.NewAuthHandler(userSvc, d.Log)
	propH := handler.NewPropertyHandler(listingSvc, d.Log)
	inqH := handler.NewInquiryHandler(inquirySvc, d.Log)
	wishH := handler.NewWishlistHandler(wishlistSvc, d.Log)

	authed := mdw.Authenticate(d.JWT, users)

	r.GET("/", welcome)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Body{
			Success: false,
			Message: "API endpoint not found",
			Data:    gin.H{"requestedUrl": c.Request.URL.Path},
		})
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		resp.OK(c, http.StatusOK, "Vasai Properties API is running successfully!", gin.H{
			"service":     d.Cfg.App.Name,
			"environment": d.Cfg.App.Env,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	ag := api.Group("/auth")
	{
		ag.POST("/register", authH.Register)
		ag.POST("/login", authH.Login)
		ag.GET("/me", authed, authH.Me)
		ag.PUT("/profile", authed, authH.UpdateProfile)
	}

	pg := api.Group("/properties")
	{
		pg.GET("", propH.List)
		pg.POST("", authed, propH.Create)
		pg.GET("/user/my-properties", authed, propH.MyProperties)
		pg.GET("/user/wishlist", authed, wishH.List)
		pg.GET("/:id", propH.Get)
		pg.PUT("/:id", authed, propH.Update)
		pg.DELETE("/:id", authed, propH.Delete)
		pg.POST("/:id/wishlist", authed, wishH.Toggle)
	}

	ig := api.Group("/inquiries")
	{
		ig.POST("/property/:id", inqH.Submit)
		ig.GET("/property/:id", authed, inqH.ListForProperty)
		ig.GET("/my-inquiries", authed, inqH.MyInquiries)
		ig.GET("/me", authed, inqH.MyInquiries) // 前端兼容别名
		ig.PUT("/:id/respond", authed, inqH.Respond)
	}

	return r
}

func welcome(c *gin.Context) {
	resp.OK(c, http.StatusOK, "Welcome to Vasai Properties API!", gin.H{
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":       "/api/auth",
			"properties": "/api/properties",
			"inquiries":  "/api/inquiries",
			"health":     "/api/health",
		},
	})
}
