package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"raid-status-bot/core/config"
	"raid-status-bot/core/loader"
	"raid-status-bot/core/logger"
	"raid-status-bot/core/middleware/auth"
	"raid-status-bot/core/middleware/rayid"
	"raid-status-bot/feature/raids"
	"raid-status-bot/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "raid-status-bot/docs/swagger"
)

// @title Raid Status Bot API
// @version 1.0
// @description Status and maintenance endpoints of the raid status bot.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"start"},
	Short:   "Run the raid status bot",
	Long: `Loads the configuration, then updates every configured channel's status message
once per cycle until interrupted. Optionally serves a status API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration (fatal before the loop starts)
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 3. Wire components
		comps, err := buildComponents(ctx, cfg, logg)
		if err != nil {
			return err
		}
		if schema, err := raids.CheckSchema(comps.db, cfg.Database.OrderColumn); err != nil {
			logg.Warn("Could not inspect scanner schema", zap.Error(err))
		} else if !schema.Matched {
			logg.Warn("Scanner schema is missing columns, raid queries will fail",
				zap.String("table", schema.Table),
				zap.Strings("missing", schema.MissingColumns),
			)
		}

		transport, err := newTransport(cfg)
		if err != nil {
			return err
		}
		if err := comps.store.Load(ctx); err != nil {
			return err
		}
		loop := newLoop(cfg, comps, transport, logg)

		// 4. Optional status server
		if cfg.Server.Enabled {
			app, err := newStatusApp(cfg, logg, loop, comps)
			if err != nil {
				return err
			}
			go func() {
				logg.Info("Starting status server", zap.String("port", cfg.Server.Port))
				if err := app.Listen(cfg.Server.Address()); err != nil {
					logg.Error("Status server stopped", zap.Error(err))
				}
			}()
			defer func() {
				logg.Info("Shutting down status server...")
				_ = app.Shutdown()
			}()
		}

		// 5. Reconcile until interrupted
		return loop.Run(ctx)
	},
}

func newStatusApp(cfg *config.Config, logg *zap.Logger, reports status.Reports, comps *components) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We will log our own startup message
	})

	// RayID first so every log line of a request can be traced
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Swagger Documentation (Public)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	mgr := loader.NewManager()
	mgr.Register(status.NewFeature(reports, comps.store, comps.names, logg.Named("status")))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, fmt.Errorf("load status features: %w", err)
	}
	logg.Debug("Status features loaded", zap.Strings("features", loaded))
	return app, nil
}

func init() {
	RootCmd.AddCommand(runCmd)
}
