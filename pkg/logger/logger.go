package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a json logger writing to stdout and, when Sink is set, to that file as well.
func NewLogger(cfg Log, name string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.TimeKey = "ts"

	ws := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if cfg.Sink != "" {
		f, err := os.OpenFile(cfg.Sink, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			ws = append(ws, zapcore.AddSync(f))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(ws...),
		zap.NewAtomicLevelAt(cfg.LogLevel),
	)
	return zap.New(core, zap.AddCaller()).Named(name)
}
