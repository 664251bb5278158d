package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort       = "8080"
	defaultAppEnv        = "local"
	defaultChefName      = "Cristoffel"
	defaultRedisAddr     = ""
	defaultRateLimit     = "200"
	defaultMaxBodyBytes  = "1048576"
	defaultStorageDisk   = "local"
	defaultStorageRoot   = "storage"
	defaultStorageURL    = "http://localhost:8080/storage"
	defaultMongoDatabase = "chefmenu"
	defaultMongoLogs     = "logs"
	defaultBotWorkers    = "4"
	defaultBotRetries    = "3"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Missing files are not an error.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":               defaultAppEnv,
		"APP_PORT":              defaultAppPort,
		"GRPC_PORT":             "",
		"CHEF_NAME":             defaultChefName,
		"MENU_SEED":             "false",
		"MENU_CARD_EVERY":       "",
		"MAX_BODY_BYTES":        defaultMaxBodyBytes,
		"RATE_LIMIT_PER_MINUTE": defaultRateLimit,
		"REDIS_ADDR":            defaultRedisAddr,
		"REDIS_PASSWORD":        "",
		"LOG_MONGO_URI":         "",
		"LOG_MONGO_DB":          defaultMongoDatabase,
		"LOG_MONGO_COLLECTION":  defaultMongoLogs,
		"STORAGE_DISK":          defaultStorageDisk,
		"STORAGE_LOCAL_ROOT":    defaultStorageRoot,
		"STORAGE_URL":           defaultStorageURL,
		"TELEGRAM_TOKEN":        "",
		"BOT_WORKERS":           defaultBotWorkers,
		"BOT_RETRIES":           defaultBotRetries,
	}
}

// ── App ──────────────────────────────────────────────────────────────────────

func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }
func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }

// GRPCPort is empty when the health RPC server is disabled.
func GRPCPort() string { _ = Load(); return get("GRPC_PORT", "") }

func ChefName() string { _ = Load(); return get("CHEF_NAME", defaultChefName) }

// SeedMenu reports whether the catalog starts with the sample menu.
func SeedMenu() bool { _ = Load(); return Bool("MENU_SEED", false) }

// MenuCardEvery is how often the full menu card is republished to storage.
// Zero (unset or unparseable) disables scheduled publishing.
func MenuCardEvery() time.Duration { _ = Load(); return Duration("MENU_CARD_EVERY", 0) }

func MaxBodyBytes() int64 {
	_ = Load()
	n, err := strconv.ParseInt(get("MAX_BODY_BYTES", defaultMaxBodyBytes), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n
}

func RateLimitPerMinute() int { _ = Load(); return Int("RATE_LIMIT_PER_MINUTE", 200) }

// ── Redis ────────────────────────────────────────────────────────────────────

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// ── Logging ──────────────────────────────────────────────────────────────────

func LogMongoURI() string        { _ = Load(); return get("LOG_MONGO_URI", "") }
func LogMongoDatabase() string   { _ = Load(); return get("LOG_MONGO_DB", defaultMongoDatabase) }
func LogMongoCollection() string { _ = Load(); return get("LOG_MONGO_COLLECTION", defaultMongoLogs) }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { _ = Load(); return get("STORAGE_DISK", defaultStorageDisk) }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", defaultStorageRoot) }
func StorageURL() string       { _ = Load(); return get("STORAGE_URL", defaultStorageURL) }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Telegram ─────────────────────────────────────────────────────────────────

func TelegramToken() string { _ = Load(); return get("TELEGRAM_TOKEN", "") }
func BotWorkers() int       { _ = Load(); return Int("BOT_WORKERS", 4) }

// BotRetries is the number of attempts per Telegram API call.
func BotRetries() int { _ = Load(); return Int("BOT_RETRIES", 3) }

// ── Loading ──────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case bool:
			s = strconv.FormatBool(v)
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

// get resolves key from the process environment first, then the loaded files.
func get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Bool parses key as a boolean ("1", "true", "yes", "on").
func Bool(key string, fallback bool) bool {
	_ = Load()
	switch strings.ToLower(get(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// Int parses key as an integer, returning fallback when unset or malformed.
func Int(key string, fallback int) int {
	_ = Load()
	n, err := strconv.Atoi(get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// Duration parses key with time.ParseDuration. Negative values count as
// malformed.
func Duration(key string, fallback time.Duration) time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get(key, ""))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
