package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/cobra"

	"github.com/Mshel/pacagents/internal/game"
	"github.com/Mshel/pacagents/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the viewer over SSH",
	RunE:  serve,
}

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	limit int

	mu        sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{limit: limit, ipCounter: make(map[string]int)}
}

// acquire counts a new session from ip unless ip is already at the limit.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ipCounter[ip] >= l.limit {
		return l.ipCounter[ip], false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func (l *connectionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", l.limit)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, l.limit)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

func serve(cmd *cobra.Command, args []string) error {
	defaults, err := uiDefaults()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	gameManager := newGameManager(store)

	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		controllerModel := ui.NewControllerModel(gameManager, store, defaults, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}

	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP)
	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.ListenAddr),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.middleware,
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create ssh server: %w", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", cfg.ListenAddr)

	serveErr := make(chan error, 1)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-serverDoneChannel:
	case err := <-serveErr:
		return fmt.Errorf("could not start server: %w", err)
	}

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("could not stop server: %w", err)
	}
	return nil
}

// compile-time check that the sqlite store satisfies the manager's store
var _ game.ResultStore = (*game.HighScoreService)(nil)
