package config

import (
	"time"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=json text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[moneyrates]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000" validate:"min=1,max=65535"`
}

//revive:disable

// ExchangeRateApi configures the rate client. A zero HTTPTimeout leaves the
// transport default in place.
type ExchangeRateApi struct {
	Provider          string        `envconfig:"PROVIDER" default:"exchangerate_host" validate:"oneof=exchangerate_host fake"`
	ApiUrl            string        `envconfig:"API_URL" default:"https://api.exchangerate.host" validate:"required,url"`
	ApiKey            string        `envconfig:"API_KEY"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	RequestsPerMinute int           `envconfig:"REQUESTS_PER_MINUTE" default:"60" validate:"min=0"`
	BurstSize         int           `envconfig:"BURST_SIZE" default:"10" validate:"min=1"`
}

//revive:enable

// Store selects the symbol cache backend.
type Store struct {
	Driver string `envconfig:"DRIVER" default:"memory" validate:"oneof=memory sqlite postgres redis"`
	DSN    string `envconfig:"DSN" validate:"required_if=Driver sqlite,required_if=Driver postgres"`
}

type Redis struct {
	URL       string `envconfig:"URL" default:"redis://localhost:6379/0" validate:"required"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"moneyrates:"`
}

type Conversion struct {
	Debounce  time.Duration `envconfig:"DEBOUNCE" default:"300ms"`
	MinAmount string        `envconfig:"MIN_AMOUNT" default:"0.01" validate:"positive_decimal"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100" validate:"min=1"`
	Window      time.Duration `envconfig:"WINDOW" default:"1s"`
}

type App struct {
	Env             string           `envconfig:"APP_ENV" default:"development"`
	Server          *Server          `envconfig:"SERVER" validate:"required"`
	Log             *Log             `envconfig:"LOG" validate:"required"`
	ExchangeRateApi *ExchangeRateApi `envconfig:"EXCHANGE_RATE_API" validate:"required"`
	Store           *Store           `envconfig:"STORE" validate:"required"`
	Redis           *Redis           `envconfig:"REDIS" validate:"required"`
	Conversion      *Conversion      `envconfig:"CONVERSION" validate:"required"`
	RateLimit       *RateLimit       `envconfig:"RATE_LIMIT" validate:"required"`
}
