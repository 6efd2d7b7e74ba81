package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load("config.env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyCacheTTL, "60s")
	viper.SetDefault(KeyRequestTimeout, "30s")
	viper.SetDefault(KeyMaxConcurrent, 8)
}

func Hostname() string       { return viper.GetString(KeyHostname) }
func Organization() string   { return viper.GetString(KeyOrganization) }
func AccessToken() string    { return viper.GetString(KeyAccessToken) }
func UserLogin() string      { return viper.GetString(KeyUserLogin) }
func LogLevel() string       { return viper.GetString(KeyLogLevel) }
func CacheTTL() string       { return viper.GetString(KeyCacheTTL) }
func RequestTimeout() string { return viper.GetString(KeyRequestTimeout) }
func MaxConcurrent() int     { return viper.GetInt(KeyMaxConcurrent) }
