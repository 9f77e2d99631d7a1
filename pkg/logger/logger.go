package logger

import (
	"strings"

	"go.uber.org/zap"
)

var sugar = zap.NewNop().Sugar()

// Init builds the process-wide logger. Production environments get JSON
// output at info level, anything else gets the console development encoder.
func Init(env string) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return
	}
	sugar = l.Sugar()
}

func Sync() {
	_ = sugar.Sync()
}

func Debug(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, pairs(keysAndValues)...)
}

func Info(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, pairs(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	sugar.Warnw(msg, pairs(keysAndValues)...)
}

func Error(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, pairs(keysAndValues)...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	sugar.Fatalw(msg, pairs(keysAndValues)...)
}

// pairs keeps a dangling trailing value instead of letting zap drop it.
func pairs(kv []interface{}) []interface{} {
	if len(kv)%2 == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv)+1)
	out = append(out, kv[:len(kv)-1]...)
	return append(out, "detail", kv[len(kv)-1])
}
