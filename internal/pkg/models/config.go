package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Session  SessionConfig
	OTP      OTPConfig
	Mailer   MailerConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// SessionConfig contains server-side session configuration
type SessionConfig struct {
	CookieName string
	TTLDays    int // sliding expiry, refreshed on each authenticated request
	Secure     bool
}

// OTPConfig contains one-time-code configuration
type OTPConfig struct {
	TTLMinutes       int
	RevealInResponse bool // honored only outside production
}

// MailerConfig contains the out-of-band code notifier configuration
type MailerConfig struct {
	URL            string
	APIKey         string
	TimeoutSeconds int
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
