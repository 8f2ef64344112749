package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger 初始化全局 zap logger，之后统一通过 zap.L() 使用
func InitLogger() {
	level := zapcore.InfoLevel
	if os.Getenv("CHAT_DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
}
