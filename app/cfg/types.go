package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port              string
	APIAccessKey      string
	WorkerCount       int
	SchedulerInterval int

	// Pipeline configuration
	MaxItemAgeHours int
	MinQualityScore int
	FetchTimeout    int
	FetchRetries    int
	YouTubeAPIKey   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
