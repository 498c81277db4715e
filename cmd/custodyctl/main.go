package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sharedcustody/custody-calendar/internal/cli"
	"github.com/sharedcustody/custody-calendar/internal/core/service"
	apiclient "github.com/sharedcustody/custody-calendar/internal/infrastructure/http"
	"github.com/sharedcustody/custody-calendar/internal/infrastructure/queue"
	"github.com/sharedcustody/custody-calendar/internal/pkg/config"
	"github.com/sharedcustody/custody-calendar/pkg/logger"
)

func main() {
	cfg := config.LoadClient()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "custodyctl",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := service.NewSession()
	client := apiclient.NewClient(cfg.Server, cfg.Timeout, session)

	saves := queue.NewDispatcher(cfg.SaveWorkers, client, logger.Component("dispatcher"))
	saves.SetTimeout(cfg.Timeout)

	store := service.NewDocumentStore(session, client, saves, cfg.Debounce, logger.Component("store"))

	app := cli.NewApp(cli.Deps{
		Auth:    client,
		Session: session,
		Store:   store,
		Reports: service.NewReportService(cfg.Guardians.Names()),
		Saves:   saves,
		Names:   cfg.Guardians.Names(),
		Out:     os.Stdout,
		Log:     logger.Component("cli"),
	})

	saves.OnResult(app.SaveResult)
	// Workers outlive ctx so saves flushed on interrupt are still delivered.
	saves.Start(context.Background())

	log.Debug().Str("server", cfg.Server).Msg("starting")
	app.Run(ctx)
}
