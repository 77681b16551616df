package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const HardcodedVersion = "V0.1"

// Config holds the start-up constants. Sources are applied lowest first:
// defaults, YAML file, HWGAUGE_* environment, then command-line overrides.
type Config struct {
	RefreshHz       float64       `yaml:"refresh_hz"`
	Drive           string        `yaml:"drive"`
	DiskCeilingMBps float64       `yaml:"disk_ceiling_mbps"`
	CanvasWidth     float64       `yaml:"canvas_width"`
	CanvasHeight    float64       `yaml:"canvas_height"`
	FontSize        float64       `yaml:"font_size"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	LibvirtURI      string        `yaml:"libvirt_uri"`
	HealthInterval  time.Duration `yaml:"health_interval"`
	GPUQueryTimeout time.Duration `yaml:"gpu_query_timeout"`

	// ConfigPath is the file the YAML layer was read from, empty when none
	// was found.
	ConfigPath string `yaml:"-"`
	Version    string `yaml:"-"`
}

func Defaults() Config {
	return Config{
		RefreshHz:       10,
		Drive:           defaultDrive(runtime.GOOS),
		DiskCeilingMBps: 1000,
		CanvasWidth:     2400,
		CanvasHeight:    480,
		FontSize:        32,
		LogLevel:        "info",
		LogJSON:         false,
		LibvirtURI:      "",
		HealthInterval:  30 * time.Second,
		GPUQueryTimeout: 2 * time.Second,
		Version:         HardcodedVersion,
	}
}

func defaultDrive(goos string) string {
	if goos == "windows" {
		return "C"
	}
	return "/"
}

// DefaultPath is ~/.config/hwgauge/config.yaml, or empty when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hwgauge", "config.yaml")
}

// Load builds a validated Config. A missing file at path is not an error.
// Overrides run after the environment layer and before validation.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Defaults()
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	for _, o := range overrides {
		o(&cfg)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Drive = strings.TrimSpace(cfg.Drive)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.ConfigPath = path
	return nil
}

func (c *Config) applyEnv() {
	c.RefreshHz = envFloat("HWGAUGE_REFRESH_HZ", c.RefreshHz)
	c.Drive = env("HWGAUGE_DRIVE", c.Drive)
	c.DiskCeilingMBps = envFloat("HWGAUGE_DISK_CEILING_MBPS", c.DiskCeilingMBps)
	c.CanvasWidth = envFloat("HWGAUGE_CANVAS_WIDTH", c.CanvasWidth)
	c.CanvasHeight = envFloat("HWGAUGE_CANVAS_HEIGHT", c.CanvasHeight)
	c.FontSize = envFloat("HWGAUGE_FONT_SIZE", c.FontSize)
	c.LogLevel = env("HWGAUGE_LOG_LEVEL", c.LogLevel)
	c.LogJSON = envBool("HWGAUGE_LOG_JSON", c.LogJSON)
	c.LibvirtURI = env("HWGAUGE_LIBVIRT_URI", c.LibvirtURI)
	c.HealthInterval = envDuration("HWGAUGE_HEALTH_INTERVAL", c.HealthInterval)
	c.GPUQueryTimeout = envDuration("HWGAUGE_GPU_QUERY_TIMEOUT", c.GPUQueryTimeout)
}

func (c Config) Validate() error {
	if c.RefreshHz <= 0 {
		return errors.New("refresh_hz must be > 0")
	}
	if strings.TrimSpace(c.Drive) == "" {
		return errors.New("drive is required")
	}
	if c.DiskCeilingMBps <= 0 {
		return errors.New("disk_ceiling_mbps must be > 0")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return errors.New("canvas size must be > 0")
	}
	if c.FontSize <= 0 {
		return errors.New("font_size must be > 0")
	}
	if c.HealthInterval <= 0 {
		return errors.New("health_interval must be > 0")
	}
	if c.GPUQueryTimeout <= 0 {
		return errors.New("gpu_query_timeout must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	return nil
}

// FrameDuration is the target time between frame starts.
func (c Config) FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / c.RefreshHz)
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
