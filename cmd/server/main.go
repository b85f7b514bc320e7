package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/pulseworks/worktrack/internal/server"
	"github.com/pulseworks/worktrack/modules"
	"github.com/pulseworks/worktrack/pkg/application"
	"github.com/pulseworks/worktrack/pkg/configuration"
	"github.com/pulseworks/worktrack/pkg/eventbus"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(log),
	})
	if err := modules.Load(app); err != nil {
		log.Fatalf("loading modules: %v", err)
	}
	if err := app.Migrations().Apply(ctx); err != nil {
		log.Fatalf("applying migrations: %v", err)
	}

	srv, err := server.Default(conf, app)
	if err != nil {
		log.Fatalf("building server: %v", err)
	}

	log.WithField("address", conf.SocketAddress).Info("listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
