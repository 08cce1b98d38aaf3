package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ArchiveConfig holds the score archive database settings.
type ArchiveConfig struct {
	Path string `mapstructure:"path"`
}

// FeedConfig is a single article feed to poll.
type FeedConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// SourcesConfig groups the article feeds.
type SourcesConfig struct {
	Feeds         []FeedConfig `mapstructure:"feeds"`
	FetchInterval string       `mapstructure:"fetch_interval"` // duration string, e.g., "15m"
}

// ScoringConfig controls a scoring pass.
type ScoringConfig struct {
	LexiconPath string `mapstructure:"lexicon_path"`
	Workers     int    `mapstructure:"workers"`
	TopPosts    int    `mapstructure:"top_posts"`
	TopTags     int    `mapstructure:"top_tags"`
	MaxItems    int    `mapstructure:"max_items"` // items loaded per pass
	MaxPosts    int    `mapstructure:"max_posts"` // candidate posts loaded per pass
	BatchSize   int    `mapstructure:"batch_size"`
	BatchDelay  string `mapstructure:"batch_delay"` // duration string
}

// ChannelConfig defines one digest channel.
type ChannelConfig struct {
	Name             string `mapstructure:"name"`
	Frequency        string `mapstructure:"frequency"` // overrides default
	TopN             int    `mapstructure:"top_n"`
	MinItems         int    `mapstructure:"min_items"`
	OutputDir        string `mapstructure:"output_dir"` // overrides default
	Language         string `mapstructure:"language"`
	Title            string `mapstructure:"title"` // supports {.CurrentDate}
	ItemSkipDuration string `mapstructure:"item_skip_duration"`
}

// DigestConfig controls digest building.
type DigestConfig struct {
	Frequency string          `mapstructure:"frequency"` // default frequency
	TopN      int             `mapstructure:"top_n"`
	MinItems  int             `mapstructure:"min_items"`
	OutputDir string          `mapstructure:"output_dir"`
	Interval  string          `mapstructure:"interval"` // how often builders evaluate
	Channels  []ChannelConfig `mapstructure:"channels"`
}

// OpenAIConfig enables the optional digest summarizer.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Sources SourcesConfig `mapstructure:"sources"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Digest  DigestConfig  `mapstructure:"digest"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Archive.Path == "" {
		c.Archive.Path = "./pulse-digest.db"
	}
	if c.Sources.FetchInterval == "" {
		c.Sources.FetchInterval = "15m"
	}
	if c.Scoring.Workers == 0 {
		c.Scoring.Workers = 4
	}
	if c.Scoring.TopPosts == 0 {
		c.Scoring.TopPosts = 3
	}
	if c.Scoring.TopTags == 0 {
		c.Scoring.TopTags = 3
	}
	if c.Scoring.MaxItems == 0 {
		c.Scoring.MaxItems = 200
	}
	if c.Scoring.MaxPosts == 0 {
		c.Scoring.MaxPosts = 500
	}
	if c.Scoring.BatchSize == 0 {
		c.Scoring.BatchSize = 50
	}
	if c.Scoring.BatchDelay == "" {
		c.Scoring.BatchDelay = "200ms"
	}
	if c.Digest.Frequency == "" {
		c.Digest.Frequency = "daily"
	}
	if c.Digest.TopN == 0 {
		c.Digest.TopN = 10
	}
	if c.Digest.MinItems == 0 {
		c.Digest.MinItems = 3
	}
	if c.Digest.OutputDir == "" {
		c.Digest.OutputDir = "./out"
	}
	if c.Digest.Interval == "" {
		c.Digest.Interval = "30m"
	}
	for i := range c.Digest.Channels {
		ch := &c.Digest.Channels[i]
		if ch.Frequency == "" {
			ch.Frequency = c.Digest.Frequency
		}
		if ch.TopN == 0 {
			ch.TopN = c.Digest.TopN
		}
		if ch.MinItems == 0 {
			ch.MinItems = c.Digest.MinItems
		}
		if ch.OutputDir == "" {
			ch.OutputDir = c.Digest.OutputDir
		}
		if ch.ItemSkipDuration == "" {
			ch.ItemSkipDuration = "72h"
		}
	}
}
