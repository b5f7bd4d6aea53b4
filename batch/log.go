package batch

import (
	"log/slog"
	"time"
)

func slogOp(op string) slog.Attr { return slog.String("op", op) }

func slogItems(n int) slog.Attr { return slog.Int("items", n) }

func slogDuration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

func slogErr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

func levelFor(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}
