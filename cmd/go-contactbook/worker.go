package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/server"
)

// refreshWorker re-imports the remote source on every tick and republishes
// the feeds.
func (s *session) refreshWorker(ctx context.Context, interval time.Duration, srv *server.FeedServer) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			s.importRemote(ctx)
			if err := s.publish(ctx, srv); err != nil {
				log.Error(config.ErrPublish, config.LogKeyError, err)
			}
		}
	}
}
