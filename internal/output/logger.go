package output

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the diagnostic logger writing to w. An empty level means
// warn. Level names are colored only when color allows it for w.
func NewLogger(level string, w io.Writer, color ColorMode) (*logrus.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	enabled := color.Enabled(w)
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      enabled,
		DisableColors:    !enabled,
	})
	return logger, nil
}
