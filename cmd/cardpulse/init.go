package api

import (
	"cardpulse/conf"
	"cardpulse/internal/dao"
	"cardpulse/internal/dao/query"
	alerthandler "cardpulse/internal/handler/alert"
	"cardpulse/internal/handler/card"
	"cardpulse/internal/handler/collection"
	"cardpulse/internal/handler/grading"
	"cardpulse/internal/market"
	"cardpulse/internal/notify"
	"cardpulse/internal/router"
	"cardpulse/internal/service"
	"cardpulse/pkg/logger"
	"cardpulse/pkg/mail"
	"time"

	"gorm.io/gorm"
)

// InitRouter 组装依赖并返回路由和后台扫描器。
// 扫描器由调用方启动，shutdown时调用Stop等它跑完当前一轮。
func InitRouter(db *gorm.DB) (Router, *service.AlertMonitor) {
	appCfg := conf.AppConfig

	cardDao := query.NewCardDAO(db)
	alertDao := query.NewAlertDAO(db)
	collDao := query.NewCollectionDAO(db)

	// 上游行情客户端和实时价格缓存
	client, err := market.NewClient(appCfg.Market.ApiBase, appCfg.Market.ApiKey,
		time.Duration(appCfg.Market.FetchTimeoutSeconds)*time.Second)
	if err != nil {
		logger.Fatalf("failed to create market client: %v", err)
	}
	priceCache := market.NewPriceCache(time.Duration(appCfg.Market.CacheTTLSeconds)*time.Second, nil)
	resolver := market.NewResolver(client, priceCache, cardDao)

	// 通知通道：websocket定向推送 + 可选邮件
	gateway := alerthandler.NewAlertGateway()
	notifier := notify.NewMulti(
		notify.NewGatewayNotifier(gateway),
		notify.NewEmailNotifier(appCfg.Email),
	)

	alertSvc := service.NewAlertService(alertDao, resolver, notifier).
		WithRecentStore(dao.NewRecentAlertStore(appCfg.Alert.RecentLimit))
	if appCfg.Email.PreCheck {
		alertSvc.WithEmailVerifier(mail.NewVerifier(false))
	}

	cardSvc := service.NewCardService(cardDao, resolver, client)
	collSvc := service.NewCollectionService(collDao, cardDao)

	monitor := service.NewAlertMonitor(alertSvc,
		time.Duration(appCfg.Alert.ScanIntervalSeconds)*time.Second,
		appCfg.Alert.PreferLive)

	apiRouter := router.NewApiRouter(
		alerthandler.NewHandler(alertSvc),
		gateway,
		card.NewHandler(cardSvc),
		collection.NewHandler(collSvc),
		grading.NewHandler(),
	)
	return apiRouter, monitor
}
