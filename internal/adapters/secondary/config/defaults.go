package config

import (
	"github.com/fredcamaral/slidex/internal/domain/entities"
)

// Setting keys as they appear in the settings file
const (
	KeyRevealDirectory  = "revealDirectory"
	KeyLessonsDirectory = "lessonsDirectory"
	KeyLessonsFileRegex = "lessonsFileRegex"
	KeyTemplate         = "template"
	KeyMaxSlideLines    = "maxSlideLines"
	KeyMaxDepth         = "maxDepth"
	KeyOnError          = "onError"
	KeyFrameworkMarker  = "frameworkMarker"
	KeyLogLevel         = "logLevel"
	KeyServeHost        = "serveHost"
	KeyServePort        = "servePort"
	KeyWatchIntervalMs  = "watchIntervalMs"
	KeyCORSOrigins      = "corsOrigins"
)

// EnvPrefix prefixes every environment override, e.g. SLIDEX_LESSONSFILEREGEX
const EnvPrefix = "SLIDEX"

// DefaultPropertiesFile is the settings file looked up in the working directory
const DefaultPropertiesFile = "SlideExtractor.properties"

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		RevealDirectory:  "reveal",
		LessonsDirectory: "lessons",
		LessonsFileRegex: "*.md",
		Template:         "template.html",
		MaxSlideLines:    22,
		MaxDepth:         3,
		OnError:          entities.FailurePolicyAbort,
		FrameworkMarker:  "reveal.js/README.md",
		LogLevel:         string(entities.LogLevelInfo),
		ServeHost:        "localhost",
		ServePort:        8000,
		WatchIntervalMs:  500,
		CORSOrigins:      "",
	}
}

// defaultValues returns the defaults keyed by setting name, in settings file order
func defaultValues() []keyValue {
	d := GetDefaultConfig()
	return []keyValue{
		{KeyRevealDirectory, d.RevealDirectory},
		{KeyLessonsDirectory, d.LessonsDirectory},
		{KeyLessonsFileRegex, d.LessonsFileRegex},
		{KeyTemplate, d.Template},
		{KeyMaxSlideLines, d.MaxSlideLines},
		{KeyMaxDepth, d.MaxDepth},
		{KeyOnError, string(d.OnError)},
		{KeyFrameworkMarker, d.FrameworkMarker},
		{KeyLogLevel, d.LogLevel},
		{KeyServeHost, d.ServeHost},
		{KeyServePort, d.ServePort},
		{KeyWatchIntervalMs, d.WatchIntervalMs},
		{KeyCORSOrigins, d.CORSOrigins},
	}
}

type keyValue struct {
	key   string
	value interface{}
}
