package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/types"
	"github.com/brandvault/brandvault-backend/internal/utils"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	Origin       string
	AllowOrigins []string

	// SnapshotBackend is "file" or "sqlite".
	SnapshotBackend string
	SnapshotPath    string

	StorageEnabled bool

	// SettingsFile optionally seeds engine settings on first boot; a
	// persisted snapshot always wins over the file.
	SettingsFile string
}

func LoadConfig(log *logger.Logger) Config {
	origin := utils.GetEnv("PUBLIC_ORIGIN", "http://localhost:8080", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	var allowOrigins []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowOrigins = append(allowOrigins, o)
		}
	}
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		ServiceName:     utils.GetEnv("SERVICE_NAME", "brandvault", log),
		Environment:     utils.GetEnv("ENVIRONMENT", "development", log),
		Version:         utils.GetEnv("SERVICE_VERSION", "dev", log),
		Origin:          origin,
		AllowOrigins:    allowOrigins,
		SnapshotBackend: utils.GetEnv("SNAPSHOT_BACKEND", "file", log),
		SnapshotPath:    utils.GetEnv("SNAPSHOT_PATH", "data/brandvault.json", log),
		StorageEnabled:  utils.GetEnvAsBool("STORAGE_ENABLED", false, log),
		SettingsFile:    utils.GetEnv("SETTINGS_FILE", "", log),
	}
}

// LoadSettingsFile reads seed settings from a yaml file. A missing path is
// not an error; the engine just starts with defaults.
func LoadSettingsFile(path string) (*types.Settings, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read settings file %q: %w", path, err)
	}
	var s types.Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse settings file %q: %w", path, err)
	}
	return &s, nil
}
