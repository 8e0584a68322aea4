package router

import (
	"cardpulse/internal/handler/alert"
	"cardpulse/internal/handler/card"
	"cardpulse/internal/handler/collection"
	"cardpulse/internal/handler/grading"
	"cardpulse/internal/handler/ping"
	"cardpulse/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	alertHandler      *alert.Handler
	alertGateway      *alert.AlertGateway
	cardHandler       *card.Handler
	collectionHandler *collection.Handler
	gradingHandler    *grading.Handler
}

func NewApiRouter(ah *alert.Handler, gw *alert.AlertGateway, ch *card.Handler, colh *collection.Handler, gh *grading.Handler) *ApiRouter {
	return &ApiRouter{
		alertHandler:      ah,
		alertGateway:      gw,
		cardHandler:       ch,
		collectionHandler: colh,
		gradingHandler:    gh,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	a := base.Group("/alerts")
	{
		a.GET("/ws", api.alertGateway.ServeWS) // 通过websocket接收触发推送
		a.GET("/stats", api.alertHandler.AlertStats())
		a.GET("/:user_id", api.alertHandler.AlertGetList())
		a.POST("/:user_id", api.alertHandler.AlertCreate())
		a.POST("/:user_id/check", api.alertHandler.AlertCheck())
		a.GET("/:user_id/recent", api.alertHandler.AlertRecent())
		a.DELETE("/:user_id/:alert_id", api.alertHandler.AlertDelete())
		a.PUT("/:user_id/:alert_id", api.alertHandler.AlertToggle())
	}

	c := base.Group("/cards")
	{
		c.GET("/:card_id", api.cardHandler.CardGet())
		c.GET("/:card_id/price", api.cardHandler.PriceGet())
		c.GET("/:card_id/related", api.cardHandler.CardRelated())
	}

	s := base.Group("/sets")
	{
		s.GET("", api.cardHandler.SetGetList())
		s.GET("/:set_id", api.cardHandler.SetGet())
		s.GET("/:set_id/cards/:number", api.cardHandler.CardGetBySetNumber())
		// 种子落库会打上游API，挂防抖
		s.POST("/:set_id/seed", middleware.AntiDuplicateMiddleware(), api.cardHandler.SetSeed())
	}

	base.GET("/search/cards", api.cardHandler.CardSearch())

	col := base.Group("/collection")
	{
		col.GET("/stats", api.collectionHandler.CollectionStats())
		col.GET("/:user_id", api.collectionHandler.CollectionGet())
		col.POST("/:user_id", api.collectionHandler.CollectionAdd())
		col.GET("/:user_id/portfolio", api.collectionHandler.PortfolioGet())
		col.POST("/:user_id/portfolio/snapshot", api.collectionHandler.SnapshotRecord())
		col.DELETE("/:user_id/:card_id", api.collectionHandler.CollectionRemove())
		col.PUT("/:user_id/:card_id", api.collectionHandler.QuantityUpdate())
	}

	gr := base.Group("/grading")
	{
		gr.POST("/estimate", api.gradingHandler.GradeEstimate())
		gr.POST("/cost-estimate", api.gradingHandler.GradeCostEstimate())
	}
}
