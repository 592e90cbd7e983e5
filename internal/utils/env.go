package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable is not an integer, using default", "value", valStr, "default", defaultVal)
		}
		return defaultVal
	}
	return i
}

func GetEnvAsBool(key string, defaultVal bool, log *logger.Logger) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(valStr)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		if log != nil {
			log.Warn("Environment variable is not a boolean, using default", "env_var", key, "value", valStr)
		}
		return defaultVal
	}
}
