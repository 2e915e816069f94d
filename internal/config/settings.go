package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/game"
	loopconfig "github.com/tomz197/spacedodge/internal/loop/config"
)

// DefaultPath is the settings file read when SPACEDODGE_CONFIG is unset.
const DefaultPath = "spacedodge.toml"

// Settings is the complete runtime configuration. Values come from the
// compiled-in defaults, then the TOML file, then environment variables.
type Settings struct {
	Game        GameSettings        `toml:"game"`
	Leaderboard LeaderboardSettings `toml:"leaderboard"`
	SSH         SSHSettings         `toml:"ssh"`
	Web         WebSettings         `toml:"web"`
	Log         LogSettings         `toml:"log"`
}

// GameSettings tune the gameplay.
type GameSettings struct {
	Width         int           `toml:"width"`
	Height        int           `toml:"height"`
	TickInterval  time.Duration `toml:"tick_interval"`
	SpawnInterval time.Duration `toml:"spawn_interval"`
	MaxHostiles   int           `toml:"max_hostiles"`
	InitialLives  int           `toml:"initial_lives"`
	HitScore      int           `toml:"hit_score"`
}

type LeaderboardSettings struct {
	Path string `toml:"path"` // Empty keeps scores in memory only
	Size int    `toml:"size"`
}

type SSHSettings struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	HostKeyPath string `toml:"host_key"`
}

type WebSettings struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	DisplayHost string `toml:"display_host"` // Shown on the page as the SSH address
}

type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Local game only; logs are discarded when empty
}

// Defaults returns the compiled-in settings.
func Defaults() Settings {
	return Settings{
		Game: GameSettings{
			Width:         loopconfig.ViewWidth,
			Height:        loopconfig.ViewHeight,
			TickInterval:  loopconfig.TickInterval,
			SpawnInterval: loopconfig.SpawnInterval,
			MaxHostiles:   loopconfig.MaxLiveHostiles,
			InitialLives:  loopconfig.InitialLives,
			HitScore:      loopconfig.HitScore,
		},
		Leaderboard: LeaderboardSettings{
			Path: loopconfig.LeaderboardPath,
			Size: loopconfig.LeaderboardSize,
		},
		SSH: SSHSettings{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
		},
		Web: WebSettings{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "localhost",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Path returns the settings file location.
func Path() string {
	return GetEnv("SPACEDODGE_CONFIG", DefaultPath)
}

// Load reads the settings file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Defaults()

	if path != "" {
		md, err := toml.DecodeFile(path, &s)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug("no settings file, using defaults", "path", path)
		case err != nil:
			return Settings{}, fmt.Errorf("decode %s: %w", path, err)
		default:
			for _, key := range md.Undecoded() {
				log.Warn("unknown setting ignored", "path", path, "key", key.String())
			}
		}
	}

	s.applyEnv()
	return s, nil
}

// applyEnv overrides settings from the environment.
func (s *Settings) applyEnv() {
	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", s.SSH.HostKeyPath)
	s.Web.Host = GetEnv("WEB_HOST", s.Web.Host)
	s.Web.Port = GetEnv("WEB_PORT", s.Web.Port)
	s.Web.DisplayHost = GetEnv("SSH_DISPLAY_HOST", s.Web.DisplayHost)
	s.Leaderboard.Path = GetEnv("LEADERBOARD_PATH", s.Leaderboard.Path)
	s.Log.Level = GetEnv("LOG_LEVEL", s.Log.Level)
	s.Log.File = GetEnv("LOG_FILE", s.Log.File)
}

// Rules returns the gameplay rules described by the settings.
func (s Settings) Rules() game.Rules {
	return game.Rules{
		Width:         s.Game.Width,
		Height:        s.Game.Height,
		TickInterval:  s.Game.TickInterval,
		SpawnInterval: s.Game.SpawnInterval,
		MaxHostiles:   s.Game.MaxHostiles,
		InitialLives:  s.Game.InitialLives,
		HitScore:      s.Game.HitScore,
	}
}

// LogLevel parses the configured level, falling back to info.
func (s Settings) LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(s.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
