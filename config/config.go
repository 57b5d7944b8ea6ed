package config

import "time"

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	Smtp struct {
		Host         string `yaml:"host" env:"SMTPHOST"`
		Port         int    `yaml:"port" env:"SMTPPORT" env-default:"587"`
		FallbackPort int    `yaml:"fallback_port" env:"SMTPFALLBACKPORT" env-default:"465"`
		Username     string `yaml:"username" env:"SMTPUSERNAME"`
		Password     string `yaml:"password" env:"SMTPPASSWORD"`
		Sender       string `yaml:"sender" env:"SMTPSENDER"`
	} `yaml:"smtp"`
	Imap struct {
		Host     string `yaml:"host" env:"IMAPHOST"`
		Port     int    `yaml:"port" env:"IMAPPORT" env-default:"993"`
		Username string `yaml:"username" env:"IMAPUSERNAME"`
		Password string `yaml:"password" env:"IMAPPASSWORD"`
		Mailbox  string `yaml:"mailbox" env:"IMAPMAILBOX" env-default:"INBOX"`
	} `yaml:"imap"`
	Oracle struct {
		BaseURL     string  `yaml:"base_url" env:"ORACLEBASEURL" env-default:"https://api.openai.com/v1/chat/completions"`
		APIKey      string  `yaml:"api_key" env:"ORACLEAPIKEY"`
		Model       string  `yaml:"model" env:"ORACLEMODEL" env-default:"gpt-4"`
		Temperature float64 `yaml:"temperature" env:"ORACLETEMPERATURE" env-default:"0.1"`
		MaxTokens   int     `yaml:"max_tokens" env:"ORACLEMAXTOKENS" env-default:"800"`
	} `yaml:"oracle"`
	Batch struct {
		Throttle  time.Duration `yaml:"throttle" env:"BATCHTHROTTLE" env-default:"2s"`
		DedupeTTL time.Duration `yaml:"dedupe_ttl" env:"BATCHDEDUPETTL" env-default:"24h"`
	} `yaml:"batch"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
	Status struct {
		// Strict makes database and mailbox failures count against the
		// overall status report. When false, only the oracle gates it.
		Strict bool `yaml:"strict" env:"STATUSSTRICT" env-default:"false"`
	} `yaml:"status"`
}
