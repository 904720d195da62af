// Package daemonrun bootstraps the lumen daemon: configuration, logging,
// the compositor backend, background producers, the IPC server, and the
// event loop, in that order. The CLI's bare invocation lands here.
package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"lumen/internal/apps"
	"lumen/internal/clipboard"
	"lumen/internal/compositor"
	"lumen/internal/config"
	"lumen/internal/daemon"
	"lumen/internal/event"
	"lumen/internal/ipc"
	"lumen/internal/logging"
	"lumen/internal/reload"
	"lumen/internal/search"
	"lumen/internal/ui"
)

// Options carries the CLI flags into the bootstrap. Zero values fall
// back to defaults.
type Options struct {
	ConfigPath string
	Endpoint   string
	// Host overrides the UI host, used by tests. Nil selects the
	// default host for this build.
	Host ui.Host
}

// Run starts the daemon and blocks until it quits or reloads. A live
// instance on the endpoint is not treated as a failure by callers: Run
// returns ipc.ErrAlreadyRunning and the CLI exits 0 silently, making
// startup idempotent. On reload Run does not return on POSIX systems.
func Run(ctx context.Context, opts Options) error {
	signalCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, configPath, configExists, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store := config.NewStore(cfg, configPath, configExists)

	if err := os.MkdirAll(cfg.Logging.Dir, 0o755); err != nil {
		return fmt.Errorf("ensure log directory: %w", err)
	}
	logPath := filepath.Join(cfg.Logging.Dir, "lumen.log")
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		RunID:            uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = ipc.DefaultEndpoint()
	}

	queue := event.NewQueue()

	searchDirs := apps.SearchDirs(cfg.Apps.ExtraDirs)
	entries := apps.Scan(searchDirs)
	catalog := search.NewCatalog(entries)
	queue.Send(event.ApplicationsChanged(entries))
	logger.Info("application index built", logging.Int("entries", len(entries)))

	server, err := ipc.NewServer(signalCtx, endpoint, queue, store, catalog, logger)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			return err
		}
		return fmt.Errorf("bind control endpoint: %w", err)
	}
	defer server.Close()
	server.Serve()
	logger.Info("daemon listening", logging.String(logging.FieldSocket, endpoint))

	if cfg.Apps.Watch {
		watcher, err := apps.NewWatcher(searchDirs, logger)
		if err != nil {
			logger.Warn("desktop entry watcher unavailable", logging.Error(err))
		} else {
			go watcher.Run(signalCtx, func(entries []apps.Entry) {
				catalog.Update(entries)
				queue.Send(event.ApplicationsChanged(entries))
			})
		}
	}

	var history *clipboard.Store
	if cfg.Clipboard.Enabled {
		history, err = clipboard.Open(cfg.Clipboard.DBPath, cfg.Clipboard.HistoryLimit)
		if err != nil {
			logger.Warn("clipboard history unavailable", logging.Error(err))
			history = nil
		} else {
			defer history.Close()
			if monitor := clipboard.NewMonitor(logging.NewComponentLogger(logger, "clipboard")); monitor != nil {
				go monitor.Run(signalCtx, func(capture clipboard.Capture) {
					queue.Send(event.ClipboardCaptured(capture))
				})
			}
		}
	}

	comp := compositor.Detect(logging.NewComponentLogger(logger, "compositor"))

	host := opts.Host
	if host == nil {
		host = ui.NewHeadlessHost()
	}

	// The loop only stops on Quit, Reload, or queue close; translate
	// signal delivery into a queue close so shutdown takes the same
	// path as everything else.
	go func() {
		<-signalCtx.Done()
		queue.Close()
	}()

	loop := daemon.New(daemon.Options{
		Queue:      queue,
		Host:       host,
		Compositor: comp,
		Store:      store,
		History:    history,
		Logger:     logging.NewComponentLogger(logger, "daemon"),
	})

	outcome := loop.Run(signalCtx)

	// Release the endpoint before a possible re-exec; the replacement
	// process must not probe its predecessor's socket as live.
	server.Close()

	if outcome == daemon.OutcomeReload {
		logger.Info("re-executing daemon")
		if err := reload.Exec(endpoint); err != nil {
			return fmt.Errorf("reload: %w", err)
		}
	}

	logger.Info("daemon stopped")
	return nil
}
