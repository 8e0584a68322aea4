package main

import (
	api "cardpulse/cmd/cardpulse"
	"cardpulse/conf"
	"cardpulse/internal/middleware"
	"cardpulse/internal/model/entity"
	"cardpulse/pkg/cache"
	"cardpulse/pkg/db"
	"cardpulse/pkg/logger"
	"fmt"
	"log"
	"os"
)

func main() {

	// 加载配置文件
	err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.Init(appCfg.Log)

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	if dbUser == "" || dbPass == "" || dbHost == "" {
		dbUser = conf.AppConfig.Username
		dbPass = conf.AppConfig.Db.Password
		dbHost = conf.AppConfig.Host
		dbPort = conf.AppConfig.Port
		dbName = conf.AppConfig.DbName
	}

	// 初始化数据库
	datasource := db.Init(db.Config{
		User:      dbUser,
		Password:  dbPass,
		Host:      dbHost,
		Port:      dbPort,
		DBName:    dbName,
		ParseTime: true,
	})
	if err := datasource.AutoMigrate(
		&entity.CardSet{},
		&entity.Card{},
		&entity.PriceAlert{},
		&entity.CollectionItem{},
		&entity.PortfolioSnapshot{},
	); err != nil {
		logger.Fatalf("auto migrate failed: %v", err)
	}

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisAddr := fmt.Sprintf("%s:%s", redisHost, redisPort)
	if redisHost == "" || redisPort == "" {
		redisAddr = conf.AppConfig.Redis.Addr
	}
	if redisPassword != "" {
		appCfg.Redis.Password = redisPassword
	}
	appCfg.Redis.Addr = redisAddr

	// 初始化redis缓存
	cache.InitRedis(appCfg.Redis)

	srvRouter, monitor := api.InitRouter(datasource)

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		// 等当前扫描轮次结束再放行退出
		monitor.Stop()

		if datasource != nil {
			// 关闭主库链接
			if m, err := datasource.DB(); err == nil {
				_ = m.Close()
			}
		}

		cache.CloseRedis()
		logger.Sync()
	})

	// 后台周期扫描
	monitor.Start()

	srv.Run(middleware.NewMiddleware(), srvRouter)
}
