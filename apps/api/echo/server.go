package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/advising"
	"github.com/acadtrack/advising/core/checklist"
	"github.com/acadtrack/advising/core/course"
	"github.com/acadtrack/advising/core/directory"
	"github.com/acadtrack/advising/core/ledger"
)

type (
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		CourseSvc    *course.Service
		ChecklistSvc *checklist.Service
		DirectorySvc *directory.Service
		LedgerSvc    *ledger.Service
		AdvisingSvc  *advising.Service
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps         ServerDeps
		app          *echo.Echo
		errChan      chan error
		shutdownChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:         deps,
		app:          echo.New(),
		errChan:      make(chan error, 1),
		shutdownChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownChan, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	g := s.app.Group("")
	registerDirectoryAPI(g, s.deps.DirectorySvc)
	registerCourseAPI(g, s.deps.CourseSvc)
	registerChecklistAPI(g, s.deps.ChecklistSvc)
	registerLedgerAPI(g, s.deps.LedgerSvc)
	registerAdvisingAPI(g, s.deps.AdvisingSvc)
}

// signalShutdown is called by the error handler on an integrity issue.
func (s *server) signalShutdown() {
	s.shutdownChan <- syscall.SIGTERM
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errChan <- err
	}
}

func (s *server) Errors() <-chan error { return s.errChan }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdownChan }

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Advising Checklist API!")
}

type SuccessResponse struct {
	Success string `json:"success"`
}
