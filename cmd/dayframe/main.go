package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/dayframe/internal/challenge"
	"github.com/alexanderramin/dayframe/internal/cli"
	"github.com/alexanderramin/dayframe/internal/config"
	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/llm"
	"github.com/alexanderramin/dayframe/internal/metrics"
	"github.com/alexanderramin/dayframe/internal/repository"
	"github.com/alexanderramin/dayframe/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	catalog, err := challenge.Load()
	if err != nil {
		return err
	}

	uow := db.NewSQLiteUnitOfWork(database)
	app := &cli.App{
		Config:  cfg,
		LLM:     llm.LoadConfig(),
		Store:   service.NewStore(database, uow, catalog),
		Metrics: metrics.NewRecorder(),
	}

	// The logger is built from flags once the command line is parsed.
	observer := appLogObserver{app: app}
	app.Parking = service.NewParkingService(repository.NewSQLiteParkedItemRepo(database), uow, observer)
	app.Plans = service.NewPlanService(repository.NewSQLiteDailyNoteRepo(database), uow, observer)
	app.Challenges = service.NewChallengeService(repository.NewSQLiteChallengeRepo(database), catalog, observer)
	app.Profiles = service.NewProfileService(
		repository.NewSQLiteUserProfileRepo(database),
		repository.NewSQLiteValuesRepo(database),
		repository.NewSQLiteStreakRepo(database),
	)

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// appLogObserver forwards service events to the App's logger.
type appLogObserver struct {
	app *cli.App
}

func (o appLogObserver) ObserveUseCase(ctx context.Context, event service.UseCaseEvent) {
	if o.app.Log == nil {
		return
	}
	service.NewLogUseCaseObserver(o.app.Log).ObserveUseCase(ctx, event)
}
