package collection

import (
	"cardpulse/internal/model"
	"cardpulse/internal/service"
	"cardpulse/pkg/errors"
	"cardpulse/pkg/errors/ecode"
	"cardpulse/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type Handler struct {
	service *service.CollectionService
}

func NewHandler(svc *service.CollectionService) *Handler {
	return &Handler{service: svc}
}

// CollectionGet GET /collection/:user_id?set=sv8 收藏列表和持仓汇总
func (h *Handler) CollectionGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.Param("user_id")
		items, err := h.service.List(ctx, userId, ctx.Query("set"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		summary, err := h.service.Summary(ctx, userId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"user_id": userId,
			"items":   items,
			"count":   len(items),
			"summary": summary,
		})
	}
}

// CollectionAdd POST /collection/:user_id
func (h *Handler) CollectionAdd() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AddCollectionRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(ecode.InvalidParam, err), nil)
			return
		}
		if err := h.service.Add(ctx, ctx.Param("user_id"), req); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"added": true})
	}
}

// CollectionRemove DELETE /collection/:user_id/:card_id?condition=near_mint
func (h *Handler) CollectionRemove() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		err := h.service.Remove(ctx, ctx.Param("user_id"), ctx.Param("card_id"), ctx.Query("condition"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"removed": true})
	}
}

// QuantityUpdate PUT /collection/:user_id/:card_id
func (h *Handler) QuantityUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UpdateQuantityRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(ecode.InvalidParam, err), nil)
			return
		}
		err := h.service.UpdateQuantity(ctx, ctx.Param("user_id"), ctx.Param("card_id"), req.Condition, *req.Quantity)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"quantity": *req.Quantity})
	}
}

// PortfolioGet GET /collection/:user_id/portfolio?days=30 持仓汇总和历史走势
func (h *Handler) PortfolioGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.Param("user_id")
		days := cast.ToInt(ctx.DefaultQuery("days", "30"))

		summary, err := h.service.Summary(ctx, userId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		history, err := h.service.History(ctx, userId, days)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"user_id": userId,
			"summary": summary,
			"history": history,
		})
	}
}

// SnapshotRecord POST /collection/:user_id/portfolio/snapshot 落一个持仓价值点
func (h *Handler) SnapshotRecord() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		point, err := h.service.RecordSnapshot(ctx, ctx.Param("user_id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, point)
	}
}

// CollectionStats GET /collection/stats
func (h *Handler) CollectionStats() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		stats, err := h.service.Stats(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, stats)
	}
}
