package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "mnh-itaccess-backend/internal/adapter/http"
	mw "mnh-itaccess-backend/internal/adapter/middleware"
	"mnh-itaccess-backend/internal/adapter/repository/mysql"
	"mnh-itaccess-backend/internal/config"
	"mnh-itaccess-backend/internal/infrastructure/cache"
	"mnh-itaccess-backend/internal/infrastructure/db"
	"mnh-itaccess-backend/internal/usecase/assignment"
	"mnh-itaccess-backend/internal/usecase/notify"
	"mnh-itaccess-backend/internal/usecase/query"
	requestUC "mnh-itaccess-backend/internal/usecase/request"
	"mnh-itaccess-backend/internal/usecase/workflow"
	"mnh-itaccess-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zl.Fatal("mysql connect failed", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zl.Fatal("redis connect failed", zap.Error(err))
	}

	// repositories + unit of work
	requests := mysql.NewRequestRepository(gdb)
	notifs := mysql.NewNotificationRepository(gdb)
	dir := mysql.NewDirectoryRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// usecases
	dispatcher := notify.NewDispatcher(notifs, dir, rdb, zl)
	requestsUC := requestUC.NewUsecase(requests, uow)
	workflowUC := workflow.NewUsecase(uow)
	assignmentUC := assignment.NewUsecase(uow)
	queryUC := query.NewUsecase(requests)

	// handlers
	h := httpadp.NewHandler()
	reqH := httpadp.NewRequestHandler(requestsUC, dispatcher)
	decH := httpadp.NewDecisionHandler(workflowUC, dispatcher)
	asgH := httpadp.NewAssignmentHandler(assignmentUC, dispatcher)
	qryH := httpadp.NewQueryHandler(queryUC)
	ntfH := httpadp.NewNotificationHandler(notifs)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	idemp := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.POST("/requests", reqH.CreateRequest, idemp)
	e.GET("/requests/:request_id", reqH.GetRequest)
	e.GET("/requests/:request_id/snapshot", reqH.GetSnapshot)
	e.POST("/requests/:request_id/decisions", decH.SubmitDecision, idemp)
	e.POST("/requests/:request_id/assignment", asgH.AssignOfficer, idemp)
	e.PATCH("/tasks/:task_id/status", asgH.AdvanceTask, idemp)
	e.GET("/tasks/:task_id", asgH.GetTask)
	e.GET("/inbox", qryH.Inbox)
	e.GET("/notifications", ntfH.List)
	e.POST("/notifications/read", ntfH.MarkRead)

	addr := ":" + cfg.AppPort
	zl.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
