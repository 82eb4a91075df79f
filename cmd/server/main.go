package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/questlog/backend/internal/auth"
	"github.com/questlog/backend/internal/config"
	"github.com/questlog/backend/internal/demo"
	"github.com/questlog/backend/internal/frontend"
	"github.com/questlog/backend/internal/httpapi"
	"github.com/questlog/backend/internal/repository"
	"github.com/questlog/backend/internal/service"
	"github.com/questlog/backend/internal/ws"
)

func main() {
	demoMode := flag.Bool("demo", false, "Seed a demo account with sample data")
	devMode := flag.Bool("dev", false, "Development mode (serve frontend from filesystem)")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	dsn := flag.String("db", "", "Override database DSN")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("auth secret not configured (set auth.secret or QUESTLOG_AUTH_SECRET)")
	}

	db, err := repository.NewDB(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	habits := repository.NewHabitRepository(db)
	missions := repository.NewMissionRepository(db)
	achievements := repository.NewAchievementRepository(db)
	bonuses := repository.NewDailyBonusRepository(db)

	hub := ws.NewHub()

	taskSvc := service.NewTaskService(db, tasks, users, bonuses, hub)
	habitSvc := service.NewHabitService(habits)
	missionSvc := service.NewMissionService(db, missions, users, hub)
	achievementSvc := service.NewAchievementService(db, achievements, tasks, users, hub)
	taskSvc.SetAchievementChecker(achievementSvc)

	if *demoMode {
		seeder := demo.NewSeeder(users, tasks, habits, missions, achievementSvc)
		if err := seeder.Seed(context.Background()); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	scheduler := service.NewSchedulerService(time.Local)
	archiveSvc := service.NewArchiveService(tasks)
	if err := archiveSvc.Schedule(scheduler, cfg.Archive.Time); err != nil {
		log.Fatalf("Failed to schedule archive sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	authMgr := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	server := httpapi.NewServer(authMgr, users, taskSvc, habitSvc, missionSvc, achievementSvc, hub)

	// Embedded frontend handler: when built with -tags embed, serves from
	// binary. Otherwise falls back to serving from the filesystem.
	if *devMode {
		cwd, _ := os.Getwd()
		dir := filepath.Join(cwd, "..", "frontend")
		if _, err := os.Stat(dir); err == nil {
			log.Printf("Serving frontend from filesystem: %s", dir)
			server.SetStaticHandler(http.FileServer(http.Dir(dir)))
		}
	} else if h := frontend.Handler(); h != nil {
		server.SetStaticHandler(h)
	}

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		scheduler.Stop()
		os.Exit(0)
	}()

	if err := httpapi.ListenAndServe(cfg.Server.Host, cfg.Server.Port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
