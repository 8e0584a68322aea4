package card

import (
	"cardpulse/conf"
	"cardpulse/internal/service"
	"cardpulse/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type Handler struct {
	service *service.CardService
}

func NewHandler(svc *service.CardService) *Handler {
	return &Handler{service: svc}
}

// PriceGet GET /cards/:card_id/price?live=true
func (h *Handler) PriceGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		preferLive := conf.AppConfig.Alert.PreferLive
		if v := ctx.Query("live"); v != "" {
			preferLive = v == "true" || v == "1"
		}

		info, err := h.service.GetPrice(ctx, ctx.Param("card_id"), preferLive)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, info)
	}
}

// CardGet GET /cards/:card_id
func (h *Handler) CardGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		detail, err := h.service.GetCard(ctx, ctx.Param("card_id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, detail)
	}
}

// CardGetBySetNumber GET /sets/:set_id/cards/:number
func (h *Handler) CardGetBySetNumber() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		detail, err := h.service.GetBySetNumber(ctx, ctx.Param("set_id"), ctx.Param("number"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, detail)
	}
}

// CardSearch GET /search/cards?q=pikachu&set=sv8&rarity=rare&limit=20
func (h *Handler) CardSearch() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := cast.ToInt(ctx.DefaultQuery("limit", "20"))
		cards, err := h.service.Search(ctx, ctx.Query("q"), ctx.Query("set"), ctx.Query("rarity"), limit)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"query":   ctx.Query("q"),
			"results": cards,
			"count":   len(cards),
		})
	}
}

// CardRelated GET /cards/:card_id/related?limit=5
func (h *Handler) CardRelated() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := cast.ToInt(ctx.DefaultQuery("limit", "5"))
		cards, err := h.service.Related(ctx, ctx.Param("card_id"), limit)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"related": cards, "count": len(cards)})
	}
}

// SetGetList GET /sets?series=Scarlet+%26+Violet
func (h *Handler) SetGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sets, err := h.service.ListSets(ctx, ctx.Query("series"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"sets": sets, "count": len(sets)})
	}
}

// SetGet GET /sets/:set_id
func (h *Handler) SetGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		set, err := h.service.GetSet(ctx, ctx.Param("set_id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, set)
	}
}

// SetSeed POST /sets/:set_id/seed 从上游拉取整系列落库
func (h *Handler) SetSeed() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		count, err := h.service.SeedSet(ctx, ctx.Param("set_id"))
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, gin.H{"seeded": count})
	}
}
