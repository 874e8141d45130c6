package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/hummingbird/logging"
	"github.com/jsphweid/hummingbird/pitchsrc"
	"github.com/jsphweid/hummingbird/render"
	"github.com/jsphweid/hummingbird/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Long:  `Serves the HTTP API on PORT, writing generated files to OUTPUT_DIR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func newServer() (*Server, error) {
	log := logging.GetGlobalLogger()

	s, err := store.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	renderer := render.NewHandle(cfg.SoundFontPath)
	if render.Probe(cfg.SoundFontPath) == render.CapabilitySoundFont {
		if err := renderer.Load(); err != nil {
			log.Error(err, "soundfont could not be loaded, audio rendering disabled")
		} else {
			log.Info("soundfont loaded", logging.Fields{"path": cfg.SoundFontPath})
		}
	} else {
		log.Warn("no soundfont configured, only MIDI will be produced")
	}

	crepe := pitchsrc.NewCrepe(cfg.CrepePath, cfg.CrepeModel)
	if !crepe.Available() {
		log.Warn("crepe not found, audio uploads will fail until it is installed", logging.Fields{"path": cfg.CrepePath})
	}

	return &Server{
		Store:     s,
		Renderer:  renderer,
		Estimator: crepe,
		Janitor:   store.NewJanitor(s, cfg.MaxFileAge, store.DefaultJanitorDelay, log),
		Log:       log,
		MaxAge:    cfg.MaxFileAge,
	}, nil
}

func serve() error {
	srv, err := newServer()
	if err != nil {
		return err
	}
	defer srv.Renderer.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		srv.Log.Info("listening", logging.Fields{"addr": httpServer.Addr, "output_dir": srv.Store.Dir()})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server stopped")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
