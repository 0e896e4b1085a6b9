package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	AI      AIConfig
	Extract ExtractConfig
	Segment SegmentConfig
	Import  ImportConfig
	Store   StoreConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AIProviderConfig holds settings for a single LLM provider.
type AIProviderConfig struct {
	Provider     string  `mapstructure:"provider"`
	APIKey       string  `mapstructure:"api_key"`
	DefaultModel string  `mapstructure:"default_model"`
	TimeoutSecs  int     `mapstructure:"timeout_secs"`
	Temperature  float64 `mapstructure:"temperature"`
}

// AIConfig holds the ordered provider chain used for text and vision extraction.
type AIConfig struct {
	Primary   AIProviderConfig `mapstructure:"primary"`
	Secondary AIProviderConfig `mapstructure:"secondary"`
	Tertiary  AIProviderConfig `mapstructure:"tertiary"`
}

// Providers returns the configured providers in fallback order. Blocks with
// no provider name are skipped.
func (a *AIConfig) Providers() []*AIProviderConfig {
	var out []*AIProviderConfig
	for _, p := range []*AIProviderConfig{&a.Primary, &a.Secondary, &a.Tertiary} {
		if p.Provider != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractConfig tunes the PDF extraction chain and document converters.
type ExtractConfig struct {
	MinTextChars  int     `mapstructure:"min_text_chars"`
	Zoom          float64 `mapstructure:"zoom"`
	MaxPages      int     `mapstructure:"max_pages"`
	OCRLanguage   string  `mapstructure:"ocr_language"`
	DocxMinChars  int     `mapstructure:"docx_min_chars"`
	CanvasWidthPx int     `mapstructure:"canvas_width_px"`
	// CanvasMaxHeightPx caps each rendered page; longer text spills onto more pages.
	CanvasMaxHeightPx int `mapstructure:"canvas_max_height_px"`
}

// SegmentConfig holds the vendor block segmentation thresholds.
type SegmentConfig struct {
	BlankLineRun  int `mapstructure:"blank_line_run"`
	MinBlockChars int `mapstructure:"min_block_chars"`
}

// ImportConfig holds bulk import settings.
type ImportConfig struct {
	MaxFileSizeMB    int64 `mapstructure:"max_file_size_mb"`
	WriteConcurrency int   `mapstructure:"write_concurrency"`
	ArchiveUploads   bool  `mapstructure:"archive_uploads"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (i *ImportConfig) MaxFileSizeBytes() int64 {
	return i.MaxFileSizeMB * 1024 * 1024
}

// StoreConfig selects the vendor store backend.
type StoreConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for archiving uploaded import files.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var providerSlots = []string{"primary", "secondary", "tertiary"}

// Load reads configuration from environment variables with the UPKEEP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("UPKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "upkeep")
	v.SetDefault("db.password", "upkeep_secret")
	v.SetDefault("db.name", "upkeep_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "upkeep-imports")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// AI provider defaults. Only the primary slot has a provider out of the box;
	// without an API key it reports unavailable.
	v.SetDefault("ai.primary.provider", "openai")
	for _, slot := range providerSlots {
		if slot != "primary" {
			v.SetDefault("ai."+slot+".provider", "")
		}
		v.SetDefault("ai."+slot+".api_key", "")
		v.SetDefault("ai."+slot+".default_model", "")
		v.SetDefault("ai."+slot+".timeout_secs", 120)
		v.SetDefault("ai."+slot+".temperature", 0.1)
	}

	// Extraction defaults
	v.SetDefault("extract.min_text_chars", 100)
	v.SetDefault("extract.zoom", 2.0)
	v.SetDefault("extract.max_pages", 20)
	v.SetDefault("extract.ocr_language", "eng")
	v.SetDefault("extract.docx_min_chars", 50)
	v.SetDefault("extract.canvas_width_px", 1200)
	v.SetDefault("extract.canvas_max_height_px", 1600)

	// Segmentation defaults
	v.SetDefault("segment.blank_line_run", 2)
	v.SetDefault("segment.min_block_chars", 10)

	// Import defaults
	v.SetDefault("import.max_file_size_mb", 25)
	v.SetDefault("import.write_concurrency", 0)
	v.SetDefault("import.archive_uploads", false)

	// Store defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.sqlite_path", "upkeep.db")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "UPKEEP_SERVER_PORT",
		"server.read_timeout":          "UPKEEP_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "UPKEEP_SERVER_WRITE_TIMEOUT",
		"server.environment":           "UPKEEP_SERVER_ENVIRONMENT",
		"db.host":                      "UPKEEP_DB_HOST",
		"db.port":                      "UPKEEP_DB_PORT",
		"db.user":                      "UPKEEP_DB_USER",
		"db.password":                  "UPKEEP_DB_PASSWORD",
		"db.name":                      "UPKEEP_DB_NAME",
		"db.sslmode":                   "UPKEEP_DB_SSLMODE",
		"db.max_open":                  "UPKEEP_DB_MAX_OPEN",
		"db.max_idle":                  "UPKEEP_DB_MAX_IDLE",
		"s3.region":                    "UPKEEP_S3_REGION",
		"s3.bucket":                    "UPKEEP_S3_BUCKET",
		"s3.endpoint":                  "UPKEEP_S3_ENDPOINT",
		"s3.access_key":                "UPKEEP_S3_ACCESS_KEY",
		"s3.secret_key":                "UPKEEP_S3_SECRET_KEY",
		"log.level":                    "UPKEEP_LOG_LEVEL",
		"log.format":                   "UPKEEP_LOG_FORMAT",
		"cors.allowed_origins":         "UPKEEP_CORS_ALLOWED_ORIGINS",
		"extract.min_text_chars":       "UPKEEP_EXTRACT_MIN_TEXT_CHARS",
		"extract.zoom":                 "UPKEEP_EXTRACT_ZOOM",
		"extract.max_pages":            "UPKEEP_EXTRACT_MAX_PAGES",
		"extract.ocr_language":         "UPKEEP_EXTRACT_OCR_LANGUAGE",
		"extract.docx_min_chars":       "UPKEEP_EXTRACT_DOCX_MIN_CHARS",
		"extract.canvas_width_px":      "UPKEEP_EXTRACT_CANVAS_WIDTH_PX",
		"extract.canvas_max_height_px": "UPKEEP_EXTRACT_CANVAS_MAX_HEIGHT_PX",
		"segment.blank_line_run":       "UPKEEP_SEGMENT_BLANK_LINE_RUN",
		"segment.min_block_chars":      "UPKEEP_SEGMENT_MIN_BLOCK_CHARS",
		"import.max_file_size_mb":      "UPKEEP_IMPORT_MAX_FILE_SIZE_MB",
		"import.write_concurrency":     "UPKEEP_IMPORT_WRITE_CONCURRENCY",
		"import.archive_uploads":       "UPKEEP_IMPORT_ARCHIVE_UPLOADS",
		"store.driver":                 "UPKEEP_STORE_DRIVER",
		"store.sqlite_path":            "UPKEEP_STORE_SQLITE_PATH",
	}
	for _, slot := range providerSlots {
		for _, field := range []string{"provider", "api_key", "default_model", "timeout_secs", "temperature"} {
			key := "ai." + slot + "." + field
			envBindings[key] = "UPKEEP_AI_" + strings.ToUpper(slot) + "_" + strings.ToUpper(field)
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if UPKEEP_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("UPKEEP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.AI = AIConfig{
		Primary:   loadProvider(v, "primary"),
		Secondary: loadProvider(v, "secondary"),
		Tertiary:  loadProvider(v, "tertiary"),
	}

	cfg.Extract = ExtractConfig{
		MinTextChars:      v.GetInt("extract.min_text_chars"),
		Zoom:              v.GetFloat64("extract.zoom"),
		MaxPages:          v.GetInt("extract.max_pages"),
		OCRLanguage:       v.GetString("extract.ocr_language"),
		DocxMinChars:      v.GetInt("extract.docx_min_chars"),
		CanvasWidthPx:     v.GetInt("extract.canvas_width_px"),
		CanvasMaxHeightPx: v.GetInt("extract.canvas_max_height_px"),
	}
	cfg.Segment = SegmentConfig{
		BlankLineRun:  v.GetInt("segment.blank_line_run"),
		MinBlockChars: v.GetInt("segment.min_block_chars"),
	}
	cfg.Import = ImportConfig{
		MaxFileSizeMB:    v.GetInt64("import.max_file_size_mb"),
		WriteConcurrency: v.GetInt("import.write_concurrency"),
		ArchiveUploads:   v.GetBool("import.archive_uploads"),
	}
	cfg.Store = StoreConfig{
		Driver:     v.GetString("store.driver"),
		SQLitePath: v.GetString("store.sqlite_path"),
	}

	if cfg.Segment.BlankLineRun < 1 {
		return nil, fmt.Errorf("segment.blank_line_run must be at least 1, got %d", cfg.Segment.BlankLineRun)
	}
	if cfg.Extract.CanvasMaxHeightPx < 200 {
		return nil, fmt.Errorf("extract.canvas_max_height_px must be at least 200, got %d", cfg.Extract.CanvasMaxHeightPx)
	}
	if cfg.Extract.Zoom <= 0 {
		return nil, fmt.Errorf("extract.zoom must be positive, got %v", cfg.Extract.Zoom)
	}
	switch cfg.Store.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}

	return cfg, nil
}

func loadProvider(v *viper.Viper, slot string) AIProviderConfig {
	prefix := "ai." + slot + "."
	return AIProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
		Temperature:  v.GetFloat64(prefix + "temperature"),
	}
}
