package config

import "time"

type Config struct {
	Web  Web
	Cors Cors
	DB   DB
	Rate Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:4000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:cart"`
	DisableTLS bool   `conf:"default:true"`
}

type Rate struct {
	// Sustained requests per second tolerated for a single caller
	// before mutations start being rejected.
	RPS    float64 `conf:"default:20"`
	Burst  int     `conf:"default:40"`
	Expiry int     `conf:"default:10"`
}
