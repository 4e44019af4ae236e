package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and cache events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnParseStart(_ context.Context, sourceBytes int) {
	h.logger.Debug("parse start", "bytes", sourceBytes)
}

func (h logHooks) OnParseComplete(_ context.Context, entries int, d time.Duration, err error) {
	h.logger.Debug("parse done", "entries", entries, "duration", d, "error", err)
}

func (h logHooks) OnLayoutStart(_ context.Context, vizType string, entries int) {
	h.logger.Debug("layout start", "type", vizType, "entries", entries)
}

func (h logHooks) OnLayoutComplete(_ context.Context, vizType string, nodes, arrows int, d time.Duration, err error) {
	h.logger.Debug("layout done", "type", vizType, "nodes", nodes, "arrows", arrows, "duration", d, "error", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
