package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-wide configuration tree.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
	Attendance AttendanceConfig `mapstructure:"attendance"`
	Capture    CaptureConfig    `mapstructure:"capture"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Feature    FeatureConfig    `mapstructure:"feature"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings for the attendance mirror store.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings (token blacklist, rate limiting).
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT settings.
type AuthConfig struct {
	JWTSecret               string        `mapstructure:"jwt_secret"`
	AccessTokenTTL          time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTLDefault  time.Duration `mapstructure:"refresh_token_ttl_default"`
	RefreshTokenTTLRemember time.Duration `mapstructure:"refresh_token_ttl_remember_me"`
}

// LogConfig logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AttendanceConfig settings for the CSV ledger and the reconciliation engine.
type AttendanceConfig struct {
	// Dir holds the per-day ledger files (Attendance_yy_mm_dd.csv).
	Dir string `mapstructure:"dir"`
	// ProfilePath points at user_data.json (name -> shift/role).
	ProfilePath string `mapstructure:"profile_path"`
	// Cooldown is the minimum gap between two marks for the same person.
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// CaptureConfig external face-recognition process settings.
type CaptureConfig struct {
	// Command is the argv used to launch the recognizer window, e.g.
	// ["python", "main.py"]. Empty disables the capture supervisor.
	Command []string `mapstructure:"command"`
	Workdir string   `mapstructure:"workdir"`
	// StopTimeout is how long to wait after SIGTERM before SIGKILL.
	StopTimeout time.Duration `mapstructure:"stop_timeout"`
}

// NotifyConfig best-effort sound notification settings.
type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Command is the player argv; the sound file path is appended, e.g. ["aplay", "-q"].
	Command  []string `mapstructure:"command"`
	SoundDir string   `mapstructure:"sound_dir"`
}

// FeatureConfig feature switches.
type FeatureConfig struct {
	// CrossShiftPolicy switches the engine to the legacy policy variant that
	// flags wrong_shift / overtime_checkin on cross-shift check-ins.
	CrossShiftPolicy bool `mapstructure:"cross_shift_policy"`
	// AutoCheckout enables the background job that checks employees out
	// after their shift window has closed.
	AutoCheckout         bool          `mapstructure:"auto_checkout"`
	AutoCheckoutInterval time.Duration `mapstructure:"auto_checkout_interval"`
}

// Load reads configuration from file and environment.
// Precedence: environment variables > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:8501"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "absensi")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Jakarta")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl_default", "24h")
	v.SetDefault("auth.refresh_token_ttl_remember_me", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("attendance.dir", "Attendance_Entry")
	v.SetDefault("attendance.profile_path", "user_data.json")
	v.SetDefault("attendance.cooldown", "300s")

	v.SetDefault("capture.command", []string{})
	v.SetDefault("capture.workdir", ".")
	v.SetDefault("capture.stop_timeout", "3s")

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.command", []string{"aplay", "-q"})
	v.SetDefault("notify.sound_dir", "dashboard/sounds")

	v.SetDefault("feature.cross_shift_policy", false)
	v.SetDefault("feature.auto_checkout", false)
	v.SetDefault("feature.auto_checkout_interval", "10m")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("ABSENSI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// missing file: defaults + env only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks critical settings.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must not be empty")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	if c.Attendance.Dir == "" {
		return fmt.Errorf("config: attendance.dir must not be empty")
	}
	if c.Attendance.Cooldown < 0 {
		return fmt.Errorf("config: attendance.cooldown must not be negative")
	}
	return nil
}
