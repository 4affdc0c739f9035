package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type YouTubeConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	Languages     []string      `yaml:"languages"`
	YtDlpFallback bool          `yaml:"ytdlp_fallback"`
	YtDlpPath     string        `yaml:"ytdlp_path"`
}

type GeminiConfig struct {
	Model           string        `yaml:"model"`
	Temperature     float32       `yaml:"temperature"`
	TopP            float32       `yaml:"top_p"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxRetries      int           `yaml:"max_retries"`
	ChunkSize       int           `yaml:"chunk_size"`
}

type SessionConfig struct {
	MaxHistory   int `yaml:"max_history"`
	MaxVideos    int `yaml:"max_videos"`
	MaxQuestions int `yaml:"max_questions"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.YouTube.Timeout == 0 {
		c.YouTube.Timeout = 15 * time.Second
	}
	if len(c.YouTube.Languages) == 0 {
		c.YouTube.Languages = []string{"en", "en-US", "en-GB"}
	}
	if c.YouTube.YtDlpFallback && c.YouTube.YtDlpPath == "" {
		c.YouTube.YtDlpPath = "yt-dlp"
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be between 0 and 2")
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.Gemini.TopP == 0 {
		c.Gemini.TopP = 0.8
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 8192
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 2 * time.Minute
	}
	if c.Gemini.MaxRetries == 0 {
		c.Gemini.MaxRetries = 3
	}
	if c.Gemini.ChunkSize == 0 {
		c.Gemini.ChunkSize = 10000
	}

	if c.Session.MaxHistory == 0 {
		c.Session.MaxHistory = 8
	}
	if c.Session.MaxVideos == 0 {
		c.Session.MaxVideos = 3
	}
	if c.Session.MaxQuestions == 0 {
		c.Session.MaxQuestions = 5
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
