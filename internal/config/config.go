// Package config загружает конфигурацию сервиса из TOML файла.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	SlotService SlotServiceConfig `toml:"slot_service"`
	Calendar    CalendarConfig    `toml:"calendar"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования. Пустой File - вывод в stdout.
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // в секундах
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки кэша слотов в Redis
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
	KeyPrefix  string `toml:"key_prefix"`
}

// TTL возвращает время жизни записи кэша
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SlotServiceConfig настройки клиента сервиса слотов
type SlotServiceConfig struct {
	URL            string `toml:"url"`
	Timeout        int    `toml:"timeout"` // в секундах
	ProfessionalID int64  `toml:"professional_id"`
}

// CalendarConfig настройки календаря записи
type CalendarConfig struct {
	ServiceDurationMinutes int                `toml:"service_duration_minutes"`
	SlotIntervalMinutes    int                `toml:"slot_interval_minutes"`
	MaxConcurrentBookings  int                `toml:"max_concurrent_bookings"`
	MinNoticeMinutes       int                `toml:"min_notice_minutes"`
	MinAdvanceDays         int                `toml:"min_advance_days"`
	MaxAdvanceDays         int                `toml:"max_advance_days"` // 0 = без ограничений
	AllowPastDates         bool               `toml:"allow_past_dates"`
	Locale                 string             `toml:"locale"`
	Timezone               string             `toml:"timezone"`
	BlockedDates           []types.DateKey    `toml:"blocked_dates"`
	AllowedDates           []types.DateKey    `toml:"allowed_dates"`
	WorkingHours           WorkingHoursConfig `toml:"working_hours"`
}

// WorkingHoursConfig расписание по дням недели: "HH:MM-HH:MM" или "closed".
// Пустое значение - выходной.
type WorkingHoursConfig struct {
	Monday    string `toml:"monday"`
	Tuesday   string `toml:"tuesday"`
	Wednesday string `toml:"wednesday"`
	Thursday  string `toml:"thursday"`
	Friday    string `toml:"friday"`
	Saturday  string `toml:"saturday"`
	Sunday    string `toml:"sunday"`
}

// Load читает конфигурацию из файла, подставляет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	return finalize(cfg)
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	return finalize(cfg)
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking_calendar",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 60,
			KeyPrefix:  "calendar:slots",
		},
		SlotService: SlotServiceConfig{
			URL:     "http://localhost:8080",
			Timeout: 5,
		},
		Calendar: CalendarConfig{
			ServiceDurationMinutes: domain.DefaultServiceDurationMinutes,
			SlotIntervalMinutes:    domain.DefaultSlotIntervalMinutes,
			MaxConcurrentBookings:  domain.DefaultMaxConcurrentBookings,
			MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			MinAdvanceDays:         domain.DefaultMinAdvanceDays,
			MaxAdvanceDays:         domain.DefaultMaxAdvanceDays,
			Locale:                 domain.DefaultLocale,
			Timezone:               "UTC",
		},
	}
}

func finalize(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.TTLSeconds <= 0 {
		return fmt.Errorf("%w: redis.ttl_seconds must be positive", ErrInvalidConfig)
	}
	if _, err := c.Calendar.Settings(); err != nil {
		return err
	}
	return nil
}

// Settings преобразует секцию calendar в настройки домена
func (c CalendarConfig) Settings() (domain.CalendarSettings, error) {
	hours, err := c.WorkingHours.toDomain()
	if err != nil {
		return domain.CalendarSettings{}, fmt.Errorf("%w: calendar.working_hours: %w", ErrInvalidConfig, err)
	}

	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.CalendarSettings{}, fmt.Errorf("%w: calendar.timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}

	settings := domain.CalendarSettings{
		WorkingHours: hours,
		Window: domain.BookingWindowPolicy{
			MinAdvanceDays: c.MinAdvanceDays,
			MaxAdvanceDays: c.MaxAdvanceDays,
			AllowPastDates: c.AllowPastDates,
		},
		BlockedDates:           domain.NewDateSet(c.BlockedDates...),
		AllowedDates:           domain.NewDateSet(c.AllowedDates...),
		ServiceDurationMinutes: c.ServiceDurationMinutes,
		SlotIntervalMinutes:    c.SlotIntervalMinutes,
		MaxConcurrentBookings:  c.MaxConcurrentBookings,
		MinNoticeMinutes:       c.MinNoticeMinutes,
		Locale:                 c.Locale,
		Location:               location,
	}
	if err := settings.Validate(); err != nil {
		return domain.CalendarSettings{}, fmt.Errorf("%w: calendar: %w", ErrInvalidConfig, err)
	}
	return settings, nil
}

func (w WorkingHoursConfig) toDomain() (domain.WorkingHours, error) {
	var hours domain.WorkingHours
	days := []struct {
		name  string
		value string
		dst   *domain.DaySchedule
	}{
		{"monday", w.Monday, &hours.Monday},
		{"tuesday", w.Tuesday, &hours.Tuesday},
		{"wednesday", w.Wednesday, &hours.Wednesday},
		{"thursday", w.Thursday, &hours.Thursday},
		{"friday", w.Friday, &hours.Friday},
		{"saturday", w.Saturday, &hours.Saturday},
		{"sunday", w.Sunday, &hours.Sunday},
	}

	for _, day := range days {
		schedule, err := domain.ParseDaySchedule(day.value)
		if err != nil {
			return domain.WorkingHours{}, fmt.Errorf("%s: %w", day.name, err)
		}
		*day.dst = schedule
	}
	return hours, nil
}
