package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"

	"github.com/JulianB-Git/nicolash-frontend/internal/apiclient"
)

type Server struct {
	Port string
}

type Client struct {
	BaseURL string
}

type Rabbit struct {
	URL      string
	Exchange string
	Queue    string
}

type OAuth struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) Server {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server config loaded")
	return Server{Port: port}
}

func BuildClientConfig(cfg *config.Config, log *zerolog.Logger) Client {
	baseURL := cfg.GetString("api.base_url")
	if baseURL == "" {
		baseURL = apiclient.DefaultBaseURL
	}
	log.Info().Str("base_url", baseURL).Msg("api client config loaded")
	return Client{BaseURL: baseURL}
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (Rabbit, error) {
	r := Rabbit{
		URL:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if r.URL == "" {
		return Rabbit{}, fmt.Errorf("rabbit.url is not set")
	}
	if r.Exchange == "" {
		r.Exchange = "error-reports"
	}
	if r.Queue == "" {
		r.Queue = "error-reports"
	}
	log.Info().Str("exchange", r.Exchange).Str("queue", r.Queue).Msg("rabbit config loaded")
	return r, nil
}

func BuildOAuthConfig(cfg *config.Config, log *zerolog.Logger) (OAuth, error) {
	o := OAuth{
		TokenURL:     cfg.GetString("oauth.token_url"),
		ClientID:     cfg.GetString("oauth.client_id"),
		ClientSecret: cfg.GetString("oauth.client_secret"),
	}
	if o.TokenURL == "" || o.ClientID == "" || o.ClientSecret == "" {
		return OAuth{}, fmt.Errorf("oauth.token_url, oauth.client_id and oauth.client_secret must all be set")
	}
	log.Info().Str("token_url", o.TokenURL).Msg("oauth config loaded")
	return o, nil
}
