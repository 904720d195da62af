package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"lumen/internal/config"
	"lumen/internal/event"
	"lumen/internal/logging"
	"lumen/internal/search"
)

// ErrAlreadyRunning is returned by NewServer when another daemon answers
// on the endpoint.
var ErrAlreadyRunning = errors.New("another instance is already running")

const probeTimeout = 500 * time.Millisecond

// Server exposes daemon control via JSON-RPC over the local endpoint.
type Server struct {
	endpoint string
	logger   *slog.Logger
	listener net.Listener
	rpc      *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	connMu  sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool
}

// NewServer binds the control endpoint. Binding probes for a live peer
// first: if one answers, NewServer fails with ErrAlreadyRunning and the
// existing endpoint is left untouched; a stale socket with no listener
// behind it is removed and rebound.
func NewServer(ctx context.Context, endpoint string, queue *event.Queue, store *config.Store, catalog *search.Catalog, logger *slog.Logger) (*Server, error) {
	if queue == nil {
		return nil, errors.New("ipc server requires an event queue")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if conn, err := dialEndpoint(endpoint, probeTimeout); err == nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w at %s", ErrAlreadyRunning, endpoint)
	}
	if err := removeEndpoint(endpoint); err != nil {
		return nil, fmt.Errorf("remove stale endpoint: %w", err)
	}

	listener, err := listenEndpoint(endpoint)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", endpoint, err)
	}

	rpcServer := rpc.NewServer()
	svc := &service{
		queue:   queue,
		store:   store,
		catalog: catalog,
		logger:  logger.With(logging.String(logging.FieldComponent, "ipc")),
		ctx:     ctx,
	}
	if err := rpcServer.RegisterName("Lumen", svc); err != nil {
		_ = listener.Close()
		_ = removeEndpoint(endpoint)
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		endpoint: endpoint,
		logger:   logger,
		listener: listener,
		rpc:      rpcServer,
		ctx:      serverCtx,
		cancel:   cancel,
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

// Serve accepts connections until Close. Each connection carries one or
// more JSON-RPC calls and is handled on its own goroutine; handlers only
// produce events, never touch daemon state directly.
func (s *Server) Serve() {
	s.logger.Debug("ipc server listening", logging.String(logging.FieldSocket, s.endpoint))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			if !s.track(conn) {
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				defer s.untrack(c)
				s.rpc.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// track registers an accepted connection for shutdown. It refuses (and
// closes) connections that race in after Close has started.
func (s *Server) track(c net.Conn) bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.closing {
		_ = c.Close()
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.connMu.Lock()
	delete(s.conns, c)
	s.connMu.Unlock()
	_ = c.Close()
}

// Close stops the server and removes the endpoint so a later bind does
// not mistake the leftover socket for a live daemon. Open connections
// are closed so an idle client cannot stall shutdown.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.connMu.Lock()
	s.closing = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.connMu.Unlock()
	s.wg.Wait()
	if err := removeEndpoint(s.endpoint); err != nil {
		s.logger.Warn("failed to remove endpoint",
			logging.String(logging.FieldSocket, s.endpoint),
			logging.Error(err))
	}
}

// IsDaemonRunning reports whether a connection attempt to the endpoint
// succeeds. Response content is irrelevant.
func IsDaemonRunning(endpoint string) bool {
	conn, err := dialEndpoint(endpoint, probeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

type service struct {
	queue   *event.Queue
	store   *config.Store
	catalog *search.Catalog
	logger  *slog.Logger
	ctx     context.Context
}

// dispatch enqueues a command and waits for the loop's answer. The wire
// handler is the reply slot's only reader; if this call returns early
// the loop's later Deliver is silently dropped.
func (s *service) dispatch(evt event.Event) CommandResult {
	s.queue.Send(evt)

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	resp, err := evt.Reply.Wait(ctx)
	if err != nil {
		return CommandResult{Error: fmt.Sprintf("daemon did not answer: %v", err)}
	}
	return CommandResult{OK: resp.OK, Error: resp.Error}
}

func (s *service) Show(_ ShowRequest, resp *ShowResponse) error {
	s.logger.Debug("show requested")
	resp.CommandResult = s.dispatch(event.Command(event.KindShow))
	return nil
}

func (s *service) Hide(_ HideRequest, resp *HideResponse) error {
	s.logger.Debug("hide requested")
	resp.CommandResult = s.dispatch(event.Command(event.KindHide))
	return nil
}

func (s *service) Toggle(_ ToggleRequest, resp *ToggleResponse) error {
	s.logger.Debug("toggle requested")
	resp.CommandResult = s.dispatch(event.Command(event.KindToggle))
	return nil
}

func (s *service) Quit(_ QuitRequest, resp *QuitResponse) error {
	s.logger.Debug("quit requested")
	resp.CommandResult = s.dispatch(event.Command(event.KindQuit))
	return nil
}

func (s *service) Reload(_ ReloadRequest, resp *ReloadResponse) error {
	s.logger.Debug("reload requested")
	resp.CommandResult = s.dispatch(event.Command(event.KindReload))
	return nil
}

func (s *service) SetTheme(req SetThemeRequest, resp *SetThemeResponse) error {
	s.logger.Debug("theme change requested", logging.String(logging.FieldTheme, req.Name))
	resp.CommandResult = s.dispatch(event.SetTheme(req.Name))
	return nil
}

// ListThemes is read-only and answered without a loop round trip.
func (s *service) ListThemes(_ ListThemesRequest, resp *ListThemesResponse) error {
	active := ""
	if s.store != nil {
		active = s.store.Theme()
	}
	for _, info := range config.ListThemes() {
		resp.Themes = append(resp.Themes, ThemeDescriptor{
			Name:   info.Name,
			Source: string(info.Source),
			Active: info.Name == active,
		})
	}
	return nil
}

// CurrentTheme is read-only and answered without a loop round trip.
func (s *service) CurrentTheme(_ CurrentThemeRequest, resp *CurrentThemeResponse) error {
	if s.store != nil {
		resp.Name = s.store.Theme()
	}
	return nil
}

// SearchApps queries the shared application index. Read-only, answered
// without a loop round trip.
func (s *service) SearchApps(req SearchAppsRequest, resp *SearchAppsResponse) error {
	if s.catalog == nil {
		return nil
	}
	for _, entry := range s.catalog.Query(req.Query, req.Limit) {
		resp.Entries = append(resp.Entries, AppEntry{
			ID:      entry.ID,
			Name:    entry.Name,
			Comment: entry.Comment,
			Exec:    entry.Exec,
			Icon:    entry.Icon,
		})
	}
	return nil
}
