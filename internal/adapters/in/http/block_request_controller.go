package http

import (
	"errors"
	"net/http"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/clinibox/box-availability-service/internal/core/ports/in"
	"github.com/clinibox/box-availability-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlockRequestController struct {
	useCase in.BlockRequestUseCase
	cfg     *config.Config
}

func NewBlockRequestController(useCase in.BlockRequestUseCase, cfg *config.Config) *BlockRequestController {
	return &BlockRequestController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *BlockRequestController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(BasicAuth(c.cfg))
	{
		api.POST("/blocks", c.createBlockRequest)
		api.GET("/blocks", c.listBlockRequests)
		api.PATCH("/blocks/:id/status", c.updateBlockRequestStatus)
		api.POST("/operational-blocks", c.createOperationalBlock)
	}
}

type CreateBlockRequestBody struct {
	DoctorRut string               `json:"doctorRut" binding:"required"`
	Date      json_types.Date      `json:"date" binding:"required"`
	Start     json_types.ClockTime `json:"start" binding:"required"`
	End       json_types.ClockTime `json:"end" binding:"required"`
	Reason    string               `json:"reason"`
	BoxCode   string               `json:"boxCode"`
}

func (c *BlockRequestController) createBlockRequest(ctx *gin.Context) {
	var body CreateBlockRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := c.useCase.CreateBlockRequest(ctx.Request.Context(), domain.BlockRequest{
		DoctorRut: body.DoctorRut,
		Date:      body.Date,
		Start:     body.Start,
		End:       body.End,
		Reason:    body.Reason,
		BoxCode:   body.BoxCode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeFormat) || errors.Is(err, domain.ErrInvalidDateRange) || errors.Is(err, domain.ErrDoctorNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

func (c *BlockRequestController) listBlockRequests(ctx *gin.Context) {
	dateFrom, err := utils.ParseDay(ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format"})
		return
	}

	dateTo := dateFrom
	if to := ctx.Query("to"); to != "" {
		dateTo, err = utils.ParseDay(to)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date format"})
			return
		}
	}

	statuses := []domain.BlockRequestStatus{
		domain.BlockRequestStatusPending,
		domain.BlockRequestStatusApproved,
		domain.BlockRequestStatusRejected,
	}
	if status := domain.BlockRequestStatus(ctx.Query("status")); status != "" {
		if !status.IsValid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		statuses = []domain.BlockRequestStatus{status}
	}

	requests, err := c.useCase.ListBlockRequests(ctx.Request.Context(), dateFrom, dateTo, statuses)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count":  len(requests),
		"blocks": requests,
	})
}

type UpdateStatusBody struct {
	Status domain.BlockRequestStatus `json:"status" binding:"required"`
}

func (c *BlockRequestController) updateBlockRequestStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block ID format"})
		return
	}

	var body UpdateStatusBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := c.useCase.UpdateBlockRequestStatus(ctx.Request.Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, domain.ErrBlockRequestNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"block": request})
}

type CreateOperationalBlockBody struct {
	Date    json_types.Date      `json:"date" binding:"required"`
	Start   json_types.ClockTime `json:"start" binding:"required"`
	End     json_types.ClockTime `json:"end" binding:"required"`
	BoxCode string               `json:"boxCode" binding:"required"`
	Reason  string               `json:"reason"`
	Status  string               `json:"status"`
}

func (c *BlockRequestController) createOperationalBlock(ctx *gin.Context) {
	var body CreateOperationalBlockBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := c.useCase.CreateOperationalBlock(ctx.Request.Context(), domain.OperationalBlock{
		Date:    body.Date,
		Start:   body.Start,
		End:     body.End,
		BoxCode: body.BoxCode,
		Reason:  body.Reason,
		Status:  body.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeFormat) || errors.Is(err, domain.ErrInvalidDateRange) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}
