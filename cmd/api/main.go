package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/attendly-backend-go/internal/config"
	appHTTP "github.com/attendly/attendly-backend-go/internal/handler/http"
	"github.com/attendly/attendly-backend-go/internal/pkg/cron"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
	"github.com/attendly/attendly-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendly-backend-go/internal/service/attendance"
	authService "github.com/attendly/attendly-backend-go/internal/service/auth"
	leaveService "github.com/attendly/attendly-backend-go/internal/service/leave"
	policyService "github.com/attendly/attendly-backend-go/internal/service/policy"
	profileService "github.com/attendly/attendly-backend-go/internal/service/profile"
	statsService "github.com/attendly/attendly-backend-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, profileRepo, JWTService, JWTRepository, GoogleService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, policyRepo, cfg.App.Timezone)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, cfg.Leave.AllowOverlap)
	policySvc := policyService.NewPolicyService(policyRepo)
	profileSvc := profileService.NewProfileService(profileRepo)
	statsSvc := statsService.NewStatsService(attendanceRepo, leaveRequestRepo)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(
		attendanceRepo,
		profileRepo,
		leaveRequestRepo,
		policyRepo,
		cfg.App.Timezone,
		cfg.Cron.AbsentMarkInterval,
	)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		DB:                db,
		JWTService:        JWTService,
		AuthHandler:       appHTTP.NewAuthHandler(JWTService, authSvc, cfg.App.FrontendURL),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		LeaveHandler:      appHTTP.NewLeaveHandler(leaveSvc),
		PolicyHandler:     appHTTP.NewPolicyHandler(policySvc),
		ProfileHandler:    appHTTP.NewProfileHandler(profileSvc),
		DashboardHandler:  appHTTP.NewDashboardHandler(statsSvc),
		FrontendURL:       cfg.App.FrontendURL,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
