package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrAPIURLRequired        = errors.New("api url is required")
	ErrInvalidAPIURL         = errors.New("invalid api url")
	ErrInvalidTimeout        = errors.New("api timeout must be positive")
	ErrInvalidSessionStorage = errors.New("invalid session storage")
	ErrInvalidEventsMode     = errors.New("invalid events mode")
	ErrInvalidDebounce       = errors.New("events debounce must be positive")

	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedSession   = errors.New("malformed session credentials")
	ErrFailedToReadStore  = errors.New("failed to read session store")
	ErrFailedToWriteStore = errors.New("failed to write session store")

	ErrFailedToCreateRequest = errors.New("failed to create request")
	ErrRequestFailed         = errors.New("request failed")
	ErrUnexpectedStatus      = errors.New("unexpected response status")
	ErrFailedToDecode        = errors.New("failed to decode response")

	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrExportFailed        = errors.New("export failed")
	ErrFailedToWriteExport = errors.New("failed to write export file")

	ErrInvalidRegexPattern = errors.New("invalid regex pattern")
	ErrInvalidGlobPattern  = errors.New("invalid glob pattern")
	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidIndex        = errors.New("event index must be a positive number")

	ErrUnknownCommand = errors.New("unknown command")
)

var (
	As   = errors.As
	Is   = errors.Is
	Join = errors.Join
	New  = errors.New
)
