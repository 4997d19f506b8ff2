package config

import "time"

type Config interface {
	EnvConfig
	ClientConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetDataFolder() string
}

// ClientConfig covers everything the API gateway client needs to talk to the
// booking backend.
type ClientConfig interface {
	GetBaseURL() string
	GetHTTPTimeout() time.Duration
	GetLoginPath() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
