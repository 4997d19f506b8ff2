package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelVar    = "LOG_LEVEL"
	folderVar      = "FOLDER"
	baseURLVar     = "BASE_URL"
	httpTimeoutVar = "HTTP_TIMEOUT"
	loginPathVar   = "LOGIN_PATH"
)

func init() {
	viper.SetDefault(appNameVar, "Roomhub Client")
	viper.SetDefault(envVar, "DEV")
	viper.SetDefault(logLevelVar, "info")
	viper.SetDefault(folderVar, "./data")
	viper.SetDefault(baseURLVar, "http://localhost:8000")
	viper.SetDefault(httpTimeoutVar, "30s")
	viper.SetDefault(loginPathVar, "/login")
	viper.AutomaticEnv()
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ ClientConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return viper.GetString(appNameVar)
}

func (EnvVars) GetEnv() string {
	return viper.GetString(envVar)
}

func (EnvVars) GetLogLevel() string {
	return viper.GetString(logLevelVar)
}

func (EnvVars) GetDataFolder() string {
	return viper.GetString(folderVar)
}

// GetBaseURL returns the root URL of the booking backend
// (e.g. "https://api.roomhub.example.com").
func (EnvVars) GetBaseURL() string {
	return viper.GetString(baseURLVar)
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	d := viper.GetDuration(httpTimeoutVar)
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetLoginPath is the authentication entry point the client is sent to after
// an unrecoverable authorization failure.
func (EnvVars) GetLoginPath() string {
	return viper.GetString(loginPathVar)
}
