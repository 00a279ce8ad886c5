package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/telebot.v3"

	"payroll-bot/config"
	"payroll-bot/internal/app/service"
	httpapi "payroll-bot/internal/delivery/http"
	"payroll-bot/internal/delivery/telegram"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/repository/sqlite"
	"payroll-bot/pkg/calendar"
	"payroll-bot/pkg/workerpool"
)

func main() {
	log.Println("Запуск Payroll Bot...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфига: %v", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе: %v", err)
	}
	defer db.Close()

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Close()

	employeeRepo := sqlite.NewSqliteEmployeeRepo(db)
	shiftService := service.NewShiftService(sqlite.NewSqliteShiftRepo(db), employeeRepo, cfg.FreezeRateAtCreation)
	employeeService := service.NewEmployeeService(employeeRepo)
	asyncService := service.NewAsyncService(pool)

	var bot *telebot.Bot
	if cfg.TelegramToken != "" {
		bot, err = telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			log.Fatalf("Ошибка запуска бота: %v", err)
		}
		handler := &telegram.Handler{
			Bot:       bot,
			Shifts:    shiftService,
			Async:     asyncService,
			Employees: employeeService,
			Calendar:  &calendar.CalendarController{},
			Router:    router.New(),
			Admins:    cfg.AdminChatIDs,
		}
		handler.Register()
		go bot.Start()
		log.Println("Бот запущен!")
	}

	var server *http.Server
	if cfg.HTTPAddr != "" {
		h := httpapi.NewHandler(shiftService, employeeService, asyncService)
		server = &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      httpapi.NewRouter(h, httpapi.NewLogger()),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Printf("[http] API доступен на %s/api", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("[http] сервер упал: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Остановка...")
	if bot != nil {
		bot.Stop()
	}
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("[http] принудительная остановка: %v", err)
		}
	}
	log.Println("Остановлено")
}
