package core

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/draftly-ai/draftly/app/core/srv"
	"github.com/draftly-ai/draftly/pkg/config"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	if err := toml.Unmarshal(c.bytes, cfg); err != nil {
		return err
	}
	return nil
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string   `toml:"addr"`
	Log      Log      `toml:"log"`
	Postgres PGConfig `toml:"postgres"`

	AI srv.AIConfig `toml:"ai"`

	Prompt Prompt `toml:"prompt"`

	bytes []byte `toml:"-"`
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

// Prompt 配置结构
// 用于自定义系统中各种场景下使用的 prompt
type Prompt struct {
	Base        string `toml:"base"`         // 内容助理系统 Prompt，为空则使用系统默认
	SessionName string `toml:"session_name"` // 会话命名 Prompt，为空则使用系统默认
}

func (c *CoreConfig) FromENV() {
	c.Addr = config.GetEnv("DRAFTLY_API_SERVICE_ADDRESS", ":33033")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.AI.Token = os.Getenv("DRAFTLY_OPENAI_TOKEN")
	c.AI.Endpoint = os.Getenv("DRAFTLY_OPENAI_ENDPOINT")
	c.AI.ChatModel = os.Getenv("DRAFTLY_OPENAI_CHAT_MODEL")
	c.AI.EmbeddingModel = os.Getenv("DRAFTLY_OPENAI_EMBEDDING_MODEL")
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("DRAFTLY_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = config.GetEnv("DRAFTLY_API_LOG_LEVEL", "info")
	l.Path = os.Getenv("DRAFTLY_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
