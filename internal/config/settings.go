// internal/config/settings.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrInvalid: конфигурация не прошла проверку
var ErrInvalid = errors.New("invalid config")

// Config holds every runtime-tunable parameter of the show.
// Все поля горячо перезагружаются через Store.Apply.
type Config struct {
	// Физика
	Gravity  float64 `json:"gravity"`
	Friction float64 `json:"friction"`

	// Частицы
	ParticleCount    int     `json:"particle_count"`
	MinParticleCount int     `json:"min_particle_count"`
	FadeSpeed        float64 `json:"fade_speed"`
	PoolSize         int     `json:"pool_size"`
	MaxParticles     int     `json:"max_particles"` // 0 — без жёсткого предела

	// Ракеты
	RocketSpeed       float64 `json:"rocket_speed"`
	RocketSpeedJitter float64 `json:"rocket_speed_jitter"`
	MaxRockets        int     `json:"max_rockets"`
	AutoLaunch        bool    `json:"auto_launch"`
	AutoLaunchDelayMs int     `json:"auto_launch_delay_ms"`

	// Визуальные эффекты
	ShowTrails         bool    `json:"show_trails"`
	TrailAlpha         float64 `json:"trail_alpha"`
	EnableGlow         bool    `json:"enable_glow"`
	GlowBlur           float64 `json:"glow_blur"`
	ShowStars          bool    `json:"show_stars"`
	StarCount          int     `json:"star_count"`
	SkylineEnabled     bool    `json:"skyline_enabled"`
	SkylineHeightRatio float64 `json:"skyline_height_ratio"`

	// Вторичные взрывы
	SecondaryEnabled        bool    `json:"secondary_enabled"`
	SecondaryProbability    float64 `json:"secondary_probability"`
	SecondaryChildCount     int     `json:"secondary_child_count"`
	SecondaryMaxGenerations int     `json:"secondary_max_generations"`

	// Производительность
	TargetFPS       int `json:"target_fps"`
	StatsIntervalMs int `json:"stats_interval_ms"`

	Theme string `json:"theme"`
	Shape string `json:"shape"`
}

// Default возвращает базовую конфигурацию
func Default() Config {
	return Config{
		Gravity:  0.12,
		Friction: 0.96,

		ParticleCount:    220,
		MinParticleCount: 50,
		FadeSpeed:        DefaultFadeSpeed,
		PoolSize:         100,
		MaxParticles:     ParticlePoolCeiling,

		RocketSpeed:       10,
		RocketSpeedJitter: 2,
		MaxRockets:        8,
		AutoLaunch:        true,
		AutoLaunchDelayMs: 1500,

		ShowTrails:         true,
		TrailAlpha:         0.25,
		EnableGlow:         true,
		GlowBlur:           15,
		ShowStars:          true,
		StarCount:          150,
		SkylineEnabled:     true,
		SkylineHeightRatio: 0.18,

		SecondaryEnabled:        true,
		SecondaryProbability:    0.35,
		SecondaryChildCount:     16,
		SecondaryMaxGenerations: 2,

		TargetFPS:       60,
		StatsIntervalMs: 500,

		Theme: "default",
		Shape: "random",
	}
}

// Validate проверяет значения и нормализует то, что можно нормализовать.
func (c *Config) Validate() error {
	switch {
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps must be positive, got %d", ErrInvalid, c.TargetFPS)
	case c.Friction <= 0 || c.Friction > 1:
		return fmt.Errorf("%w: friction must be in (0, 1], got %v", ErrInvalid, c.Friction)
	case c.FadeSpeed <= 0:
		return fmt.Errorf("%w: fade_speed must be positive, got %v", ErrInvalid, c.FadeSpeed)
	case c.RocketSpeed <= 0:
		return fmt.Errorf("%w: rocket_speed must be positive, got %v", ErrInvalid, c.RocketSpeed)
	case c.MaxRockets < 1:
		return fmt.Errorf("%w: max_rockets must be at least 1, got %d", ErrInvalid, c.MaxRockets)
	case c.SecondaryProbability < 0 || c.SecondaryProbability > 1:
		return fmt.Errorf("%w: secondary_probability must be in [0, 1], got %v", ErrInvalid, c.SecondaryProbability)
	case c.SecondaryChildCount < 0:
		return fmt.Errorf("%w: secondary_child_count must not be negative", ErrInvalid)
	case c.StatsIntervalMs <= 0:
		return fmt.Errorf("%w: stats_interval_ms must be positive, got %d", ErrInvalid, c.StatsIntervalMs)
	case c.MinParticleCount < 0 || c.ParticleCount < 0:
		return fmt.Errorf("%w: particle counts must not be negative", ErrInvalid)
	}
	// Поколение 1 и есть сам взрыв, меньше быть не может
	if c.SecondaryMaxGenerations < 1 {
		c.SecondaryMaxGenerations = 1
	}
	if c.RocketSpeedJitter < 0 {
		c.RocketSpeedJitter = 0
	}
	if c.SkylineHeightRatio < 0 {
		c.SkylineHeightRatio = 0
	} else if c.SkylineHeightRatio > 1 {
		c.SkylineHeightRatio = 1
	}
	return nil
}

func (c Config) StatsInterval() time.Duration {
	return time.Duration(c.StatsIntervalMs) * time.Millisecond
}

func (c Config) AutoLaunchDelay() time.Duration {
	return time.Duration(c.AutoLaunchDelayMs) * time.Millisecond
}

// Load reads a JSON config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := decodeStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeStrict(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Patch: частичное обновление конфигурации: ключи как в JSON-тегах Config.
type Patch map[string]any

// ApplyTo накладывает патч на копию cfg и возвращает результат.
func (p Patch) ApplyTo(cfg Config) (Config, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return cfg, fmt.Errorf("failed to marshal config patch: %w", err)
	}
	next := cfg
	if err := decodeStrict(data, &next); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := next.Validate(); err != nil {
		return cfg, err
	}
	return next, nil
}
