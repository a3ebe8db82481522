package server

import (
	"errors"
	"net/http"

	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/profiles"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies. The reference
// profile set is read-only after construction, so handlers can share it
// across requests without locking.
type Server struct {
	set         *profiles.Set
	opts        langid.Options
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
	ProfilesDir string
	Identify    langid.Options
	RateLimit   RateLimitConfig
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	MaxDataPerDay     int64
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type LanguageInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Trigrams int    `json:"trigrams"`
}

type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
	Count     int            `json:"count"`
}

type IdentifyResponse struct {
	Language string         `json:"language"`
	Name     string         `json:"name,omitempty"`
	Score    float64        `json:"score"`
	Matches  []langid.Match `json:"matches,omitempty"`
	Bytes    int            `json:"bytes"`
	Duration int64          `json:"duration_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a server with the reference profiles loaded from
// config.ProfilesDir.
func NewServer(config Config) (*Server, error) {
	if config.ProfilesDir == "" {
		return nil, errors.New("profiles directory is required")
	}

	set, err := profiles.LoadDir(config.ProfilesDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		set:         set,
		opts:        config.Identify,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
	}
	if config.RateLimit.Enabled {
		s.rateLimiter = NewRateLimiter(config.RateLimit.RequestsPerMinute, config.RateLimit.MaxDataPerDay)
	}
	return s, nil
}

// SetupRoutes registers all HTTP routes on the given mux.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/languages", s.corsMiddleware(s.languagesHandler))
	mux.HandleFunc("/identify", s.corsMiddleware(s.rateLimitMiddleware(s.identifyHandler)))
	mux.HandleFunc("/ws", s.identifyWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// Close releases server resources.
func (s *Server) Close() error {
	return nil
}
