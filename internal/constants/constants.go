package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultTopN = 5
)
