package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger. Fatal init paths still use
// the standard log package.
var Logger *zap.Logger

// InitLogger builds the zap logger; JSON in production, console otherwise.
func InitLogger() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	level := zap.InfoLevel
	if os.Getenv("GO_ENV") == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	Logger = zap.New(core, zap.AddCaller())
}
