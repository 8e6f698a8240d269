package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/timeqr/timeqr-backend-go/internal/config"
	appHTTP "github.com/timeqr/timeqr-backend-go/internal/handler/http"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/cache"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/cron"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/database"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/jwt"
	"github.com/timeqr/timeqr-backend-go/internal/repository/postgresql"
	"github.com/timeqr/timeqr-backend-go/internal/service/aggregation"
	attendanceService "github.com/timeqr/timeqr-backend-go/internal/service/attendance"
	dashboardService "github.com/timeqr/timeqr-backend-go/internal/service/dashboard"
	employeeService "github.com/timeqr/timeqr-backend-go/internal/service/employee"
	justificationService "github.com/timeqr/timeqr-backend-go/internal/service/justification"
	reportService "github.com/timeqr/timeqr-backend-go/internal/service/report"
	scheduleService "github.com/timeqr/timeqr-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Printf("redis unavailable, roster cache disabled: %v", err)
			redisClient = nil
		} else {
			cancel()
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Printf("redis close error: %v", err)
				}
			}()
		}
	}

	engineCfg, err := aggregation.FromAppConfig(cfg.Aggregation)
	if err != nil {
		fmt.Println("Error resolving aggregation policy:", err)
		return
	}
	engine := aggregation.NewEngine(engineCfg)

	eventRepo := postgresql.NewEventRepository(db, cfg.Aggregation.FetchPageSize)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	justificationRepo := postgresql.NewJustificationRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	rosterCache := cache.NewRosterCache(redisClient, time.Duration(cfg.Redis.RosterTTLSeconds)*time.Second)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, engine)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, rosterCache)
	justificationSvc := justificationService.NewJustificationService(justificationRepo, employeeRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	reportSvc := reportService.NewReportService(eventRepo, employeeRepo, justificationRepo, engine)
	dashboardSvc := dashboardService.NewDashboardService(eventRepo, engine)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(reportSvc, engine.Location())
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewJustificationHandler(justificationSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
