package router

import (
	"net/http"
	"time"

	"github.com/MaheshKadam182/meals-spotter-new/internal/auth"
	"github.com/MaheshKadam182/meals-spotter-new/internal/menu"
	"github.com/MaheshKadam182/meals-spotter-new/internal/mess"
	"github.com/MaheshKadam182/meals-spotter-new/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

type Deps struct {
	Auth        *auth.Handler
	Mess        *mess.Handler
	Menu        *menu.Handler
	CORSOrigins []string
}

func New(d Deps) *gin.Engine {
	r := gin.Default()

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/register/mess-owner", d.Auth.RegisterMessOwner)
		authGroup.POST("/login", d.Auth.Login)

		protected := authGroup.Group("/protected")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"message": "pong",
					"role":    c.GetString(middleware.UserRoleKey),
				})
			})
		}
	}

	// ───────────────────────── PUBLIC DIRECTORY ─────────────────────────
	r.GET("/messes", d.Mess.List)
	r.GET("/messes/:id", d.Mess.Get)

	// ───────────────────────── MESS OWNER ─────────────────────────
	owner := r.Group("/mess")
	owner.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleMessOwner),
	)
	{
		owner.GET("/profile", d.Mess.MyProfile)
		owner.PUT("/profile", d.Mess.UpdateProfile)
		owner.POST("/images", d.Mess.UploadImage)

		owner.GET("/menu", d.Menu.Get)
		owner.POST("/menu", d.Menu.Add)
		owner.PUT("/menu/:day/:dish", d.Menu.Edit)
		owner.DELETE("/menu/:day/:dish", d.Menu.Delete)
	}

	return r
}
