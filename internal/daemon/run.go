package daemon

import (
	"context"

	"github.com/gearvrf/gvrf-exporter/internal/config"
	"github.com/gearvrf/gvrf-exporter/internal/staging"
)

// StartAssetServer stages into the configured root and serves it. The
// caller stops the returned server.
func StartAssetServer(cfg *config.Config) (*Server, error) {
	stager, err := staging.NewStager(cfg.Server.Root, cfg.GetPublicURL())
	if err != nil {
		return nil, err
	}

	server := NewServer(cfg, stager)
	if err := server.Start(); err != nil {
		return nil, err
	}

	return server, nil
}

// Serve runs the asset server until ctx is done.
func Serve(ctx context.Context, cfg *config.Config) error {
	server, err := StartAssetServer(cfg)
	if err != nil {
		return err
	}

	<-ctx.Done()
	server.Stop()

	return nil
}
