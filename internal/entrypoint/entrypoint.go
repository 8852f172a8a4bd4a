package entrypoint

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/library/internal/audit"
	"github.com/libraryhub/library/internal/circulation"
	"github.com/libraryhub/library/internal/config"
	"github.com/libraryhub/library/internal/database"
	auditRepo "github.com/libraryhub/library/internal/database/audit"
	"github.com/libraryhub/library/internal/database/books"
	"github.com/libraryhub/library/internal/database/users"
	http_controllers "github.com/libraryhub/library/internal/http"
	"github.com/libraryhub/library/internal/scheduler"
	"github.com/libraryhub/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before background work is drained
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Management System v%s", version)

	if cfg.Global.ReadOnly {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	manager := circulation.NewManager(db.DB)
	manager.SetRecorder(auditService)

	routerCfg := http_controllers.RouterConfig{
		Books:       books.NewRepository(db.DB),
		Users:       users.NewRepository(db.DB),
		Circulation: manager,
		Database:    db,
		Consistency: manager,
		Audit:       auditService,
		ReadOnly:    cfg.Global.ReadOnly,
		StaticPath:  cfg.UI.StaticPath,
		Version:     version,
	}

	// Initialize task queue and scheduler if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var jobs *scheduler.Scheduler
	if cfg.Tasks.Enabled {
		taskClient, err = newTaskClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCheckAvailabilityQueue(manager),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		jobs, err = newScheduler(cfg, taskClient)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		jobs.Start(taskCtx)

		routerCfg.TaskQueue = taskClient
		routerCfg.Schedule = jobs
	} else {
		log.Printf("Task queue disabled - scheduled consistency checks and audit cleanup will not run")
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if jobs != nil {
			jobs.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}

func newTaskClient(cfg *config.Config) (*tasks.Client, error) {
	path := cfg.Tasks.DBPath
	if path == "" {
		path = tasks.DBPathFor(cfg.Database.Path)
	}
	log.Printf("Task queue database: %s", path)

	return tasks.NewClient(path, tasks.Config{
		Workers:         cfg.Tasks.Workers,
		ReleaseAfter:    cfg.Tasks.ReleaseAfter,
		CleanupInterval: cfg.Tasks.CleanupInterval,
	})
}

func newScheduler(cfg *config.Config, enqueuer scheduler.Enqueuer) (*scheduler.Scheduler, error) {
	s := scheduler.New(enqueuer)

	if cfg.Consistency.Enabled {
		err := s.Add(scheduler.Job{
			Name:     tasks.CheckAvailabilityQueue,
			Schedule: cfg.Consistency.Schedule,
			Task:     tasks.CheckAvailabilityTask{Trigger: "scheduler"},
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Audit.RetentionDays > 0 {
		err := s.Add(scheduler.Job{
			Name:     tasks.CleanupAuditEventsQueue,
			Schedule: cfg.Audit.Schedule,
			Task:     tasks.CleanupAuditEventsTask{RetentionDays: cfg.Audit.RetentionDays},
		})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Seed inserts the sample books and members into empty tables.
func Seed(cfg *config.Config) error {
	dbCfg := cfg.Database
	dbCfg.Seed = true

	db, err := database.NewDatabase(dbCfg)
	if err != nil {
		return err
	}
	return db.Close()
}

// Check runs the availability consistency check once and writes a summary
// to out. It reports false when any book is inconsistent.
func Check(ctx context.Context, cfg *config.Config, out io.Writer) (bool, error) {
	dbCfg := cfg.Database
	dbCfg.Seed = false

	db, err := database.NewDatabase(dbCfg)
	if err != nil {
		return false, err
	}
	defer db.Close()

	report, err := circulation.NewManager(db.DB).CheckConsistency(ctx)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(out, "Checked %d books, %d open borrowings\n", report.BooksChecked, report.OpenBorrowings)
	for _, issue := range report.Issues {
		fmt.Fprintf(out, "  book %d (%s): %s\n", issue.BookID, issue.Title, issue.Problem)
	}
	if report.Consistent() {
		fmt.Fprintln(out, "All books consistent")
	}
	return report.Consistent(), nil
}
