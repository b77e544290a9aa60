package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"moneymarket/handler"
	"moneymarket/handler/hc"
	"moneymarket/worker"
	"moneymarket/worker/priceoracle"
	"moneymarket/worker/sequencer"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run the lending engine with its api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			return err
		}

		propertyStore := providePropertyStore(database)
		operationStore := provideOperationStore(database)
		eventStore := provideEventStore(database)
		marketStore := provideMarketStore(database)

		blockService := provideBlockService()
		operationService := provideOperationService(operationStore)
		protocol := provideProtocol()

		if _, err := protocol.Bootstrap(ctx, provideConfig()); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}

		workers := []worker.Worker{
			sequencer.New(database, protocol, propertyStore, operationStore, eventStore, marketStore, blockService),
		}

		if withOracle, _ := cmd.Flags().GetBool("oracle"); withOracle && cfg.PriceOracle.EndPoint != "" {
			workers = append(workers, priceoracle.New(provideConfig(), marketStore, provideTickerService(), operationService))
		}

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, blockService))
		}

		{
			//restful api
			svr := handler.New(protocol, operationService, eventStore, blockService)
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx = signal.WithContext(ctx)
		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		g.Go(func() error {
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			return nil
		})

		g.Go(func() error {
			logrus.Infoln("serve at", addr)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				return fmt.Errorf("server aborted: %w", err)
			}

			return nil
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("oracle", true, "post ticker prices through the operation journal")
}
