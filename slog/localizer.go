package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docset"
)

var _ docset.AssetLocalizer = (*LoggingAssetLocalizer)(nil)

// LoggingAssetLocalizer logs every asset download.
type LoggingAssetLocalizer struct {
	next   docset.AssetLocalizer
	logger *slog.Logger
}

// NewLoggingAssetLocalizer creates a new LoggingAssetLocalizer.
func NewLoggingAssetLocalizer(next docset.AssetLocalizer, logger *slog.Logger) *LoggingAssetLocalizer {
	return &LoggingAssetLocalizer{next: next, logger: logger}
}

func (l *LoggingAssetLocalizer) Localize(ctx context.Context, pageURL, src, pagePath string) (ref string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		l.logger.Log(ctx, level, "localize asset",
			"page", pagePath,
			"src", src,
			"ref", ref,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Localize(ctx, pageURL, src, pagePath)
}
