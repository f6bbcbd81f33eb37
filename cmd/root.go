package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-recommender/internal/board"
	"github.com/spigell/job-recommender/internal/report"
	"github.com/spigell/job-recommender/internal/scoring"
	"github.com/spigell/job-recommender/internal/textnorm"
)

const (
	app = "job-recommender"
)

type Config struct {
	BaseURL     string         `mapstructure:"base-url"`
	UserAgent   string         `mapstructure:"user-agent"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	Output      string         `mapstructure:"output"`
	MetricsFile string         `mapstructure:"metrics-file"`
	ExcludeFile string         `mapstructure:"exclude-file"`
	Exclude     *ExcludeConfig `mapstructure:"exclude"`
	Scoring     *ScoringConfig `mapstructure:"scoring"`
	AI          *AIConfig      `mapstructure:"ai"`
}

type ExcludeConfig struct {
	Locations []string `mapstructure:"locations"`
	Titles    []string `mapstructure:"titles"`
}

type ScoringConfig struct {
	K                     int      `mapstructure:"k"`
	JobScoreMultiplier    float64  `mapstructure:"job-score-multiplier"`
	PositiveLocationScore float64  `mapstructure:"positive-location-score"`
	NegativeLocationScore float64  `mapstructure:"negative-location-score"`
	NeutralLocationScore  float64  `mapstructure:"neutral-location-score"`
	StopWords             []string `mapstructure:"stop-words"`
	PositiveNeighbours    []string `mapstructure:"positive-neighbours"`
	NegativeNeighbours    []string `mapstructure:"negative-neighbours"`
	CompareFirstToken     bool     `mapstructure:"compare-first-token"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-recommender matches community members to job postings by their bios",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("base-url", "JOBS_BASE_URL"); err != nil {
		log.Fatalf("binding JOBS_BASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-recommender.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	defaults := scoring.DefaultConfig()

	viper.SetDefault("base-url", board.DefaultBaseURL)
	viper.SetDefault("timeout", "10s")
	viper.SetDefault("output", report.FormatConsole)

	viper.SetDefault("scoring.k", defaults.K)
	viper.SetDefault("scoring.job-score-multiplier", defaults.JobScoreMultiplier)
	viper.SetDefault("scoring.positive-location-score", defaults.PositiveLocationScore)
	viper.SetDefault("scoring.negative-location-score", defaults.NegativeLocationScore)
	viper.SetDefault("scoring.neutral-location-score", defaults.NeutralLocationScore)
	viper.SetDefault("scoring.stop-words", scoring.DefaultStopWords)
	viper.SetDefault("scoring.positive-neighbours", scoring.DefaultPositiveNeighbours)
	viper.SetDefault("scoring.negative-neighbours", scoring.DefaultNegativeNeighbours)
	viper.SetDefault("scoring.compare-first-token", false)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 2)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// scoringConfig converts the user facing config into the scoring bundle.
func (c *Config) scoringConfig() *scoring.Config {
	cfg := scoring.DefaultConfig()
	if c == nil || c.Scoring == nil {
		return cfg
	}

	s := c.Scoring
	cfg.K = s.K
	cfg.JobScoreMultiplier = s.JobScoreMultiplier
	cfg.PositiveLocationScore = s.PositiveLocationScore
	cfg.NegativeLocationScore = s.NegativeLocationScore
	cfg.NeutralLocationScore = s.NeutralLocationScore
	cfg.CompareFirstToken = s.CompareFirstToken

	if s.StopWords != nil {
		cfg.StopWords = wordSet(s.StopWords)
	}
	if s.PositiveNeighbours != nil {
		cfg.PositiveNeighbours = wordSet(s.PositiveNeighbours)
	}
	if s.NegativeNeighbours != nil {
		cfg.NegativeNeighbours = wordSet(s.NegativeNeighbours)
	}

	return cfg
}

func wordSet(words []string) textnorm.WordSet {
	return textnorm.NewWordSet(scoring.LowercaseWords(words)...)
}
