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

	"github.com/spf13/cobra"

	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/stubserver"
)

var (
	stubAddr    string
	stubDB      string
	stubUploads string
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local development backend",
	Long: `Runs a backend that implements the /chat/ contract with canned replies.
History is kept per user id in a SQLite file and uploads are served from
/uploads, so the TUI can be exercised without the real assistant.`,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().StringVar(&stubAddr, "addr", "localhost:8000", "Listen address")
	stubCmd.Flags().StringVar(&stubDB, "db", "cazechat-stub.db", "SQLite history file (\":memory:\" for none)")
	stubCmd.Flags().StringVar(&stubUploads, "uploads", "uploads", "Directory uploads are stored in")
	rootCmd.AddCommand(stubCmd)
}

func runStub(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.StubLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()
	log := logger.WithComponent("stub")

	db, err := stubserver.Open(stubDB)
	if err != nil {
		return fmt.Errorf("error opening history database: %w", err)
	}
	if err := stubserver.EnsureUploadsDir(stubUploads); err != nil {
		return fmt.Errorf("error creating uploads directory: %w", err)
	}

	srv := &http.Server{
		Addr:              stubAddr,
		Handler:           stubserver.NewRouter(db, stubUploads, version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", stubAddr, "db", stubDB, "uploads", stubUploads)
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "Stub backend listening on http://%s/chat/\n", stubAddr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
