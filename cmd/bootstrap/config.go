package bootstrap

import (
	"log/slog"

	"geo-tours/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
	),
)

// LoadConfig reads .env when present, then the environment. A missing
// .env is normal outside local development.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err.Error())
	}
	return config.LoadConfig()
}
