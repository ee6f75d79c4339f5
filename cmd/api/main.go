package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/handler"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/repository"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/router"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/config"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/database"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/export"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	tuitionRepo := repository.NewTuitionRepository(db)
	graduationRepo := repository.NewGraduationRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	uniformRepo := repository.NewUniformRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, studentRepo, dashboardRepo, validate, logr)
	tuitionSvc := service.NewTuitionService(tuitionRepo, studentRepo, paymentRepo, validate, logr)
	graduationSvc := service.NewGraduationService(graduationRepo, studentRepo, paymentRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, studentRepo, paymentRepo, validate, logr)
	uniformSvc := service.NewUniformService(uniformRepo, studentRepo, export.NewExcelExporter(), validate, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, paymentRepo, export.NewPDFExporter(), logr)
	metricsSvc := service.NewMetricsService()

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Payments:   handler.NewPaymentHandler(paymentSvc),
		Tuition:    handler.NewTuitionHandler(tuitionSvc),
		Graduation: handler.NewGraduationHandler(graduationSvc),
		Uniforms:   handler.NewUniformHandler(uniformSvc),
		Courses:    handler.NewCourseHandler(courseSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
	}

	r := router.New(cfg, logr, handlers, metricsSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
