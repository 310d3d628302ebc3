package config

import "time"

// app constants
const (
	AppName = "siemctl"
	Version = "0.3.0"

	AppDescription = "terminal console for the SIEM event API"

	ConfigFile = "siemctl.yaml"
	EnvPrefix  = "SIEMCTL"
	DirEnv     = "SIEMCTL_DIR"
)

// logging constants
const (
	LogLevel  = "info"
	LogFormat = "console"
)

// api constants
const (
	DefaultAPIURL  = "http://localhost:8080/api"
	DefaultTimeout = 10 * time.Second
)

// session constants
const (
	StorageFile   = "file"
	StorageMemory = "memory"

	SessionDir      = ".siemctl"
	SessionFile     = "session.json"
	SessionDebounce = 150 * time.Millisecond
)

// events constants
const (
	ModeScroll = "scroll"
	ModePaged  = "paged"

	PageSize       = 50
	SearchDebounce = 300 * time.Millisecond
)

// export constants
const (
	FormatJSON = "json"
	FormatCSV  = "csv"

	ExportDir = "."
)

// telemetry constants
const (
	SentryFlushTimeout = 2 * time.Second
)
