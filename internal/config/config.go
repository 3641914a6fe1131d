// path: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"ginseng_paisho/internal/game"
)

// FileName is looked up in the directory passed to Load.
const FileName = "ginseng.cfg.json"

// Settings is the resolved process configuration.
type Settings struct {
	Addr     string
	LogLevel string
	LogFile  string

	DBDriver string
	DBPath   string
	DBDSN    string

	Game game.Options
}

// Load sets defaults, reads the optional config file from configDir and
// applies GINSENG_* environment overrides (GINSENG_DB_DRIVER and so on).
func Load(configDir string) (Settings, error) {
	viper.SetDefault("addr", "127.0.0.1:8080")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.path", "ginseng.db")
	viper.SetDefault("db.dsn", "")

	viper.SetDefault("game.bisonFlight", false)
	viper.SetDefault("game.flightPolicy", game.FlightGameToggle.String())
	viper.SetDefault("game.lineOfSightProtection", false)
	viper.SetDefault("game.pushIgnoresTurtle", false)

	viper.SetEnvPrefix("GINSENG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return Current()
}

// Current resolves Settings from the values viper holds now.
func Current() (Settings, error) {
	policy, ok := game.ParseFlightPolicy(viper.GetString("game.flightPolicy"))
	if !ok {
		return Settings{}, fmt.Errorf("config: game.flightPolicy %q: want one of %s",
			viper.GetString("game.flightPolicy"), strings.Join(game.FlightPolicyStrings(), ", "))
	}
	return Settings{
		Addr:     viper.GetString("addr"),
		LogLevel: viper.GetString("logLevel"),
		LogFile:  viper.GetString("logFile"),
		DBDriver: viper.GetString("db.driver"),
		DBPath:   viper.GetString("db.path"),
		DBDSN:    viper.GetString("db.dsn"),
		Game: game.Options{
			BisonFlight:           viper.GetBool("game.bisonFlight"),
			Flight:                policy,
			LineOfSightProtection: viper.GetBool("game.lineOfSightProtection"),
			PushIgnoresTurtle:     viper.GetBool("game.pushIgnoresTurtle"),
		},
	}, nil
}
