package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/game"
	"github.com/sps-cl-cz/2425-INF-3DE-BATTLESHIPS-WEICH-MAREK/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	listenHost = "0.0.0.0"
	listenPort = "2223"

	// Each session runs a full match with its own boards and loop goroutine,
	// so one IP hogging the harbor is capped early.
	sessionsPerIP = 2

	shutdownGrace = 30 * time.Second
)

// sessionLimiter counts active sessions per client IP and refuses new ones
// past the limit.
type sessionLimiter struct {
	mu     sync.Mutex
	active map[string]int
	limit  int
}

func newSessionLimiter(limit int) *sessionLimiter {
	return &sessionLimiter{active: make(map[string]int), limit: limit}
}

func (sl *sessionLimiter) acquire(ip string) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.active[ip] >= sl.limit {
		return false
	}
	sl.active[ip]++
	return true
}

func (sl *sessionLimiter) release(ip string) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.active[ip]--
	if sl.active[ip] <= 0 {
		delete(sl.active, ip)
	}
}

func (sl *sessionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := clientIP(s)
		if !sl.acquire(ip) {
			log.Warn("Refusing session, berth limit reached for this IP", "ip", ip, "limit", sl.limit)
			s.Write([]byte("All berths for your address are taken, try again later.\r\n"))
			s.Close()
			return
		}
		defer sl.release(ip)

		log.Info("Captain came aboard", "ip", ip)
		next(s)
		log.Info("Captain went ashore", "ip", ip)
	}
}

func clientIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

var highScoreService *game.HighScoreService

func battleHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := s.Pty()
	model := ui.NewControllerModel(highScoreService, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func main() {
	log.SetLevel(log.DebugLevel)

	highScoreService = game.NewHighScoreService()
	limiter := newSessionLimiter(sessionsPerIP)

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(listenHost, listenPort)),
		wish.WithHostKeyPath(os.Getenv("BATTLESHIPS_PRIVATE_KEY_PATH")),
		wish.WithMiddleware(
			bubbletea.Middleware(battleHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.middleware,
		),
	)
	if err != nil {
		log.Fatal("Could not rig the SSH server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Battleships fleet reporting for duty", "host", listenHost, "port", listenPort)
	go func() {
		if listenErr := server.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, ssh.ErrServerClosed) {
			log.Error("Listener went down", "error", listenErr)
			done <- syscall.SIGTERM
		}
	}()

	<-done

	// Sessions still in a match get the grace period to finish or bail out.
	log.Info("Striking the colors, shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Shutdown did not finish cleanly", "error", err)
	}
}
