package logger

import (
	"log/slog"
	"os"
)

var std *slog.Logger

// Init configures the process logger. Development gets human-readable text,
// everything else JSON.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	std = slog.New(handler)
}

func get() *slog.Logger {
	if std == nil {
		Init("development")
	}
	return std
}

// normalize tolerates a trailing bare error value in place of a key/value
// pair, so both logger.Error("msg", err) and logger.Error("msg", "k", v) work.
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		last := args[len(args)-1]
		args = append(args[:len(args)-1], "error", last)
	}
	return args
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
	os.Exit(1)
}
