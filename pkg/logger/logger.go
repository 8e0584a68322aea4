package logger

import (
	"cardpulse/conf"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 基于zap的全局日志，支持文件滚动（lumberjack）和控制台输出

var lg *zap.SugaredLogger

func init() {
	// 未显式Init时使用开发配置，保证单测和工具命令可用
	l, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	lg = l.Sugar()
}

// Init 根据配置初始化全局logger
func Init(cfg conf.LogConfig) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := make([]zapcore.Core, 0, 2)
	if cfg.FileName != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	lg = l.Sugar()
}

// Pair 构造结构化日志字段
func Pair(key string, value interface{}) interface{} {
	return zap.Any(key, value)
}

func Sync() {
	_ = lg.Sync()
}

func Debug(args ...interface{}) { lg.Debug(args...) }
func Info(args ...interface{})  { lg.Info(args...) }
func Warn(args ...interface{})  { lg.Warn(args...) }
func Error(args ...interface{}) { lg.Error(args...) }
func Fatal(args ...interface{}) { lg.Fatal(args...) }

func Debugf(format string, args ...interface{}) { lg.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { lg.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { lg.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { lg.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { lg.Fatalf(format, args...) }
