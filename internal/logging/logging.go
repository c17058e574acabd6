package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashwch/pomichnyk/internal/safety"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens a JSON logger appending to path. Level "off" (or an empty path)
// yields a no-op logger. The returned close func syncs and closes the file.
func New(level, path string) (*zap.Logger, func() error, error) {
	noop := func() error { return nil }
	if level == "off" || path == "" {
		return zap.NewNop(), noop, nil
	}

	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(level)); err != nil {
		return nil, noop, fmt.Errorf("could not parse log level %q: %w", level, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, noop, fmt.Errorf("could not create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, noop, fmt.Errorf("could not open log file: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), zl)
	logger := zap.New(core).With(zap.Int("pid", os.Getpid()))

	closer := func() error {
		_ = logger.Sync()
		return file.Close()
	}
	return logger, closer, nil
}

func Utterance(raw string) zap.Field {
	return zap.String("utterance", safety.RedactText(raw))
}
