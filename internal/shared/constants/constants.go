package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// RequestTimeout bounds the single outbound GET issued per audit.
	RequestTimeout = 10 * time.Second
	// MaxDrainBytes caps how much of a response body is read before closing it.
	MaxDrainBytes = 64 * 1024
)

const (
	// DefaultServeAddr is where the form and JSON API listen by default.
	DefaultServeAddr = "127.0.0.1:8080"
	// DefaultShutdownTimeout bounds graceful shutdown of the API server.
	DefaultShutdownTimeout = 15 * time.Second
	// MaxRequestBodyBytes limits JSON and form payloads accepted by the server.
	MaxRequestBodyBytes = 1 << 20
)
