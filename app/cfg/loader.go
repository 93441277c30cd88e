package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"devradar" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"devradar" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"devradar" description:"Database name"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"6" description:"Aggregation run interval in hours"`

	// Pipeline configuration
	MaxItemAgeHours int    `long:"max-item-age" env:"MAX_ITEM_AGE_HOURS" default:"120" description:"Drop items older than this many hours"`
	MinQualityScore int    `long:"min-quality-score" env:"MIN_QUALITY_SCORE" default:"50" description:"Minimum quality score (0-100) required to persist an item"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"HTTP fetch timeout in seconds"`
	FetchRetries    int    `long:"fetch-retries" env:"FETCH_RETRIES" default:"2" description:"Maximum HTTP fetch retries per request"`
	YouTubeAPIKey   string `long:"youtube-api-key" env:"YOUTUBE_API_KEY" description:"YouTube Data API key (video sources are skipped when unset)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"DevRadar/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:            raw.DBHost,
		DBPort:            raw.DBPort,
		DBUser:            raw.DBUser,
		DBPassword:        raw.DBPassword,
		DBName:            raw.DBName,
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		MaxItemAgeHours:   raw.MaxItemAgeHours,
		MinQualityScore:   raw.MinQualityScore,
		FetchTimeout:      raw.FetchTimeout,
		FetchRetries:      raw.FetchRetries,
		YouTubeAPIKey:     raw.YouTubeAPIKey,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
