package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
	"github.com/ziadkadry99/poe2genie/internal/library"
	"github.com/ziadkadry99/poe2genie/internal/markdown"
	"github.com/ziadkadry99/poe2genie/internal/passives"
	"github.com/ziadkadry99/poe2genie/internal/picker"
	"github.com/ziadkadry99/poe2genie/internal/server"
	"github.com/ziadkadry99/poe2genie/internal/web"
)

const shutdownTimeout = 10 * time.Second

var (
	serverPort     int
	serverAllowAll bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the poe2genie web server",
	Long:  `Starts the web application: item search, the build planner, AI chat and the JSON API under /api.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appCfg
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}
		if cmd.Flags().Changed("allow-all-origins") {
			cfg.Server.AllowAllOrigins = serverAllowAll
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		gateway, err := createGateway(cfg, logger)
		if err != nil {
			return err
		}
		client, searcher := createCatalog(cfg, logger)
		lib, closeLib, err := openLibrary(cfg, logger)
		if err != nil {
			return err
		}
		defer closeLib()

		suggester := picker.NewSuggester(client, cfg.Catalog.PickerLeague, logger.Named("picker"))
		tree := loadTree(cfg, logger)
		defaults := catalogDefaults(cfg)

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, logger.Named("http"))

		srv.API(func(r chi.Router) {
			catalog.RegisterRoutes(r, catalog.NewHandler(client, searcher, defaults, logger.Named("catalog")))
			picker.RegisterRoutes(r, suggester)
			passives.RegisterRoutes(r, tree)
			assistant.RegisterRoutes(r, gateway, logger.Named("assistant"))
			library.RegisterRoutes(r, lib, cfg.Server.PublicURL, logger.Named("library"))
		})

		pages, err := web.New(web.Deps{
			Searcher:  searcher,
			Defaults:  defaults,
			Gateway:   gateway,
			Suggester: suggester,
			Library:   lib,
			Tree:      tree,
			Markdown:  markdown.New(),
			PublicURL: cfg.Server.PublicURL,
			Logger:    logger.Named("web"),
		})
		if err != nil {
			return fmt.Errorf("loading pages: %w", err)
		}
		pages.RegisterRoutes(srv.Router())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		logger.Info("poe2genie starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Server.Port),
			zap.String("public_url", cfg.Server.PublicURL),
			zap.String("library", string(cfg.Library.Backend)),
			zap.Bool("assistant", gateway.Configured()),
			zap.Bool("passive_tree", tree.Available()),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "port to listen on (overrides server.port)")
	serverCmd.Flags().BoolVar(&serverAllowAll, "allow-all-origins", false, "allow cross-origin requests from any origin")
	rootCmd.AddCommand(serverCmd)
}
