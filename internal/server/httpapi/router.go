package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const metricsPath = "/metrics"

func (s *Server) newRouter() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recover))
	r.Use(s.accessLog())
	r.Use(s.metrics.Middleware(metricsPath))

	if len(s.corsOrigins) > 0 {
		cc := cors.Config{
			AllowOrigins:     s.corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		if err := cc.Validate(); err != nil {
			return nil, fmt.Errorf("cors config: %w", err)
		}
		r.Use(cors.New(cc))
	}

	r.GET("/health", s.health)
	r.GET(metricsPath, gin.WrapH(s.metrics.Handler()))

	users := r.Group("/users")
	{
		users.POST("", s.createUser)
		users.GET("", s.requireSession(), s.listUsers)
	}

	diets := r.Group("/diets")
	{
		// The aggregate routes resolve the user without the upfront gate.
		diets.GET("/total-registered", s.countDiets)
		diets.GET("/total-on-diet", s.listDietsOnDiet)
		diets.GET("/total-off-diet", s.listDietsOffDiet)

		gated := diets.Group("", s.requireSession())
		gated.GET("", s.listDiets)
		gated.POST("", s.createDiet)
		gated.GET("/:id", s.getDiet)
		gated.PUT("/:id", s.updateDiet)
		gated.DELETE("/:id", s.deleteDiet)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r, nil
}
