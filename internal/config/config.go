package config

import "os"

type Config struct {
	Addr      string
	DataDir   string
	SyncToken string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load builds the server configuration from flags with environment
// overrides. An empty SyncToken disables the blob API.
func Load(flagAddr, flagDataDir string) Config {
	return Config{
		Addr:      getEnv("KANBAN_ADDR", flagAddr),
		DataDir:   getEnv("KANBAN_DATA_DIR", flagDataDir),
		SyncToken: getEnv("KANBAN_SYNC_TOKEN", ""),
	}
}
