package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/ports/in"
	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	useCase in.AvailabilityUseCase
	cfg     *config.Config
}

func NewAvailabilityController(useCase in.AvailabilityUseCase, cfg *config.Config) *AvailabilityController {
	return &AvailabilityController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *AvailabilityController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(BasicAuth(c.cfg))
	{
		api.GET("/availability", c.computeAvailability)
	}
}

func (c *AvailabilityController) computeAvailability(ctx *gin.Context) {
	query := domain.AvailabilityQuery{
		DateFrom:     ctx.Query("from"),
		DateTo:       ctx.Query("to"),
		DoctorRut:    ctx.Query("rut"),
		Specialty:    ctx.Query("especialidad"),
		IncludeAll:   ctx.Query("all") == "true",
		ShareBlocked: ctx.Query("shareBlocked") == "true",
	}

	records, err := c.useCase.ComputeAvailability(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count":        len(records),
		"availability": records,
	})
}

func BasicAuth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Auth.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Auth.Password)) != 1 {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}
