package alert

import (
	"cardpulse/conf"
	"cardpulse/internal/model"
	"cardpulse/internal/service"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"cardpulse/pkg/response"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *service.AlertService
}

func NewHandler(svc *service.AlertService) *Handler {
	return &Handler{service: svc}
}

// AlertCreate POST /alerts/:user_id
func (h *Handler) AlertCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CreateAlertRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(ecode.InvalidParam, err), nil)
			return
		}

		res, err := h.service.Create(ctx, ctx.Param("user_id"), req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// AlertGetList GET /alerts/:user_id
func (h *Handler) AlertGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.Param("user_id")
		alerts, err := h.service.List(ctx, userId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"user_id": userId,
			"alerts":  alerts,
			"count":   len(alerts),
		})
	}
}

// AlertDelete DELETE /alerts/:user_id/:alert_id
func (h *Handler) AlertDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		alertId, err := strconv.ParseInt(ctx.Param("alert_id"), 10, 64)
		if err != nil {
			response.JSON(ctx, errors.NewWithMsg(ecode.InvalidParam, "alert id转换错误"), nil)
			return
		}
		if err := h.service.Delete(ctx, alertId, ctx.Param("user_id")); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"deleted": true})
	}
}

// AlertToggle PUT /alerts/:user_id/:alert_id
func (h *Handler) AlertToggle() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		alertId, err := strconv.ParseInt(ctx.Param("alert_id"), 10, 64)
		if err != nil {
			response.JSON(ctx, errors.NewWithMsg(ecode.InvalidParam, "alert id转换错误"), nil)
			return
		}
		var req model.ToggleAlertRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(ecode.InvalidParam, err), nil)
			return
		}
		if err := h.service.SetActive(ctx, alertId, ctx.Param("user_id"), *req.IsActive); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"is_active": *req.IsActive})
	}
}

// AlertCheck POST /alerts/:user_id/check 按需扫描该用户的提醒
func (h *Handler) AlertCheck() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.Param("user_id")
		triggered, err := h.service.CheckAlerts(ctx, userId, conf.AppConfig.Alert.PreferLive)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"user_id":   userId,
			"triggered": triggered,
			"count":     len(triggered),
		})
	}
}

// AlertRecent GET /alerts/:user_id/recent 最近触发的通知
func (h *Handler) AlertRecent() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		items, err := h.service.Recent(ctx, ctx.Param("user_id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"notifications": items, "count": len(items)})
	}
}

// AlertStats GET /alerts/stats
func (h *Handler) AlertStats() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		stats, err := h.service.Stats(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, stats)
	}
}
