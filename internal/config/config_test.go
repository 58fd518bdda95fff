package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
	require.Equal(t, 10, cfg.Resolver.DefaultMaxNominees)
	require.Empty(t, cfg.Sources)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
db:
  dsn: postgres://localhost/awards
sources:
  - url: https://example.com/nominees
    kind: html-article
    name: Example Wire
  - url: https://example.com/feed
    kind: feed
    keywords: [oscar, nominee]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "postgres://localhost/awards", cfg.DB.DSN)
	require.Len(t, cfg.Sources, 2)
	require.Equal(t, awards.SourceHTML, cfg.Sources[0].Kind)
	require.Equal(t, []string{"oscar", "nominee"}, cfg.Sources[1].Keywords)
}

func TestValidateRejectsBadSource(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Port: 8080},
		Fetch:    FetchConfig{TimeoutSeconds: 10},
		Resolver: ResolverConfig{DefaultMaxNominees: 10},
		Sources:  []awards.Source{{URL: "https://x.example", Kind: "pdf"}},
	}
	require.Error(t, cfg.Validate())

	cfg.Sources[0].Kind = awards.SourceFeed
	require.NoError(t, cfg.Validate())

	cfg.Sources[0].URL = ""
	require.Error(t, cfg.Validate())
}

func TestValidateLimits(t *testing.T) {
	cfg := Config{Server: ServerConfig{Port: 0}}
	require.Error(t, cfg.Validate())
}
