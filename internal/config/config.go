package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Destination is one scan target airport.
type Destination struct {
	Code string `json:"code" mapstructure:"code"`
	Name string `json:"name" mapstructure:"name"`
}

type Config struct {
	Port        string
	MetricsAddr string
	AppEnv      string

	JWTSecret   string
	JWTUser     string
	JWTPassword string

	AmadeusURL       string
	AmadeusAPIKey    string
	AmadeusAPISecret string

	Origin            string
	Destinations      []Destination
	DepartureDates    []string
	MaxDepartureDate  string
	MinStayDays       int
	MaxReturnDate     string
	ReturnStepDays    int
	MaxReturnDates    int
	Currency          string
	MaxOffersPerQuery int
	TopN              int
	PaceInterval      time.Duration
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("port", "5000")
	v.SetDefault("app_env", "prod")
	v.SetDefault("auth_user", "demo")
	v.SetDefault("auth_pass", "demo123")

	v.SetDefault("amadeus_url", "https://test.api.amadeus.com")

	// Scan plan: route, date grid and business rules. Expressed as data so the
	// grid can be swapped without touching orchestration code.
	v.SetDefault("origin", "MAO")
	v.SetDefault("destinations", []map[string]any{
		{"code": "FLN", "name": "Florianópolis"},
		{"code": "CWB", "name": "Curitiba"},
	})
	v.SetDefault("departure_dates", []string{"2025-12-26", "2025-12-27", "2025-12-28", "2025-12-29"})
	v.SetDefault("max_departure_date", "2025-12-29")
	v.SetDefault("min_stay_days", 13)
	v.SetDefault("max_return_date", "2026-01-14")
	v.SetDefault("return_step_days", 2)
	v.SetDefault("max_return_dates", 3)
	v.SetDefault("currency", "BRL")
	v.SetDefault("max_offers_per_query", 250)
	v.SetDefault("top_n", 5)
	v.SetDefault("pace_interval", "1s")

	if path := os.Getenv("FLIGHTS_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		// Fallback to conventional locations for local dev
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/flights")
	}

	if err := v.ReadInConfig(); err != nil {
		log.Info().Msgf("no config file found, using defaults + env vars: %v", err)
	}

	v.AutomaticEnv()

	pace, err := time.ParseDuration(v.GetString("pace_interval"))
	if err != nil {
		log.Fatal().Msgf("bad pace_interval: %v", err)
	}

	var dests []Destination
	if err := v.UnmarshalKey("destinations", &dests); err != nil {
		log.Fatal().Msgf("bad destinations: %v", err)
	}
	if len(dests) == 0 {
		log.Fatal().Msg("destinations must not be empty")
	}

	cfg := &Config{
		Port:        v.GetString("port"),
		MetricsAddr: v.GetString("metrics_addr"),
		AppEnv:      v.GetString("app_env"),

		JWTSecret:   v.GetString("jwt_secret"),
		JWTUser:     v.GetString("auth_user"),
		JWTPassword: v.GetString("auth_pass"),

		AmadeusURL:       v.GetString("amadeus_url"),
		AmadeusAPIKey:    v.GetString("amadeus_api_key"),
		AmadeusAPISecret: v.GetString("amadeus_api_secret"),

		Origin:            v.GetString("origin"),
		Destinations:      dests,
		DepartureDates:    v.GetStringSlice("departure_dates"),
		MaxDepartureDate:  v.GetString("max_departure_date"),
		MinStayDays:       v.GetInt("min_stay_days"),
		MaxReturnDate:     v.GetString("max_return_date"),
		ReturnStepDays:    v.GetInt("return_step_days"),
		MaxReturnDates:    v.GetInt("max_return_dates"),
		Currency:          v.GetString("currency"),
		MaxOffersPerQuery: v.GetInt("max_offers_per_query"),
		TopN:              v.GetInt("top_n"),
		PaceInterval:      pace,
	}

	// Credentials have no defaults; searches fail closed until both are set.
	if cfg.AmadeusAPIKey == "" || cfg.AmadeusAPISecret == "" {
		log.Warn().Msg("AMADEUS_API_KEY / AMADEUS_API_SECRET not set; provider calls will fail")
	}

	return cfg
}
