package config

import (
	"metrics_demo_server/structs"

	"github.com/MonkyMars/gecho"
)

// InitializeLogger builds the application logger. Caller information is shown outside
// production only.
func InitializeLogger(cfg *structs.Config) *gecho.Logger {
	level := gecho.ParseLogLevel(LogLevel(cfg))
	return gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(!IsProduction(cfg)),
		gecho.WithLogLevel(level),
	))
}

// InitializeRequestLogger builds the logger used by the access log
// middleware; caller information is noise there.
func InitializeRequestLogger(cfg *structs.Config) *gecho.Logger {
	level := gecho.ParseLogLevel(LogLevel(cfg))
	return gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(false),
		gecho.WithLogLevel(level),
	))
}
