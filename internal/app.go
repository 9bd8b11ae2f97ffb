package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"showcase-service/internal/adapters/inquirylog"
	logger_adapter "showcase-service/internal/adapters/logger"
	"showcase-service/internal/adapters/memorycatalog"
	"showcase-service/internal/adapters/rest"
	"showcase-service/internal/adapters/rotator"
	"showcase-service/internal/adapters/tourstore"
	"showcase-service/internal/adapters/web"
	"showcase-service/internal/configs"
	"showcase-service/internal/contracts"
	"showcase-service/internal/core/port"
	"showcase-service/internal/core/usecase"
	fluentlogger "showcase-service/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

type App struct {
	config      *configs.AppConfig
	apiServer   *rest.Server
	tourSweeper port.BackgroundWorkerPort
	heroSweeper port.BackgroundWorkerPort

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})

	// Fluent Bit подключается, только если включен в конфигурации
	var fluentClient *fluent.Fluent
	var fluentSink port.LoggerPort
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentSink, err = logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
	}

	rootLogger, err := logger_adapter.NewTeeLogger(stdoutLogger, fluentSink)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := rootLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	// --- 3. АДАПТЕРЫ ---
	catalog := memorycatalog.NewCatalogAdapter()
	content := memorycatalog.NewContentAdapter()
	inquirySink := inquirylog.NewInquiryLogAdapter(baseLogger)

	formValidator, err := contracts.NewFormValidator()
	if err != nil {
		appLogger.Error("Failed to compile form schemas", err, nil)
		return nil, fmt.Errorf("failed to compile form schemas: %w", err)
	}
	appLogger.Info("Form schemas compiled.", port.Fields{"schemas": formValidator.Keys()})

	tourSessions, err := tourstore.NewMemoryStore(appConfig.TourSession.TTL, appConfig.TourSession.SweepInterval, baseLogger)
	if err != nil {
		appLogger.Error("Failed to create tour session store", err, nil)
		return nil, fmt.Errorf("failed to create tour session store: %w", err)
	}

	siteContent, err := content.SiteContent(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}
	heroRegistry := rotator.NewRegistry(len(siteContent.HeroImages), appConfig.Hero.RotationInterval, baseLogger,
		rotator.WithSessionTTL(appConfig.Hero.SessionTTL, appConfig.Hero.SweepInterval))

	// --- 4. USE CASES ---
	findPropertiesUC := usecase.NewFindPropertiesUseCase(catalog)
	getPropertyDetailsUC := usecase.NewGetPropertyDetailsUseCase(catalog, content)
	getSiteContentUC := usecase.NewGetSiteContentUseCase(content)
	scheduleTourUC := usecase.NewScheduleTourUseCase(catalog, tourSessions, formValidator, inquirySink)
	sendContactMessageUC := usecase.NewSendContactMessageUseCase(formValidator, inquirySink)
	controlHeroPlaybackUC := usecase.NewControlHeroPlaybackUseCase(heroRegistry)
	appLogger.Info("All use cases initialized.", nil)

	// --- 5. HTTP ---
	pages, err := web.NewPageHandler(findPropertiesUC, getPropertyDetailsUC, getSiteContentUC,
		scheduleTourUC, sendContactMessageUC, heroRegistry)
	if err != nil {
		appLogger.Error("Failed to parse page templates", err, nil)
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	handlers := rest.Handlers{
		Catalog: rest.NewCatalogHandler(findPropertiesUC, getPropertyDetailsUC, getSiteContentUC),
		Tour:    rest.NewTourHandler(scheduleTourUC),
		Contact: rest.NewContactHandler(sendContactMessageUC),
		Hero:    rest.NewHeroHandler(heroRegistry, controlHeroPlaybackUC),
	}
	apiServer := rest.NewServer(appConfig.Rest, handlers, pages, baseLogger)
	appLogger.Info("HTTP server configured.", nil)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		tourSweeper:  tourSessions,
		heroSweeper:  heroRegistry,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

func (a *App) Run() error {
	// Единый контекст для всех фоновых задач
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Rest.ShutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during HTTP server shutdown", err, nil)
		}

		if err := a.tourSweeper.Close(); err != nil {
			a.logger.Error("Error closing tour session sweeper", err, nil)
		}
		if err := a.heroSweeper.Close(); err != nil {
			a.logger.Error("Error closing hero session sweeper", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.logger.Info("Application shut down gracefully.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 3)

	go func() {
		if err := a.apiServer.Start(); err != nil {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		workerLogger := a.logger.WithFields(port.Fields{"worker": "tour_session_sweeper"})
		if err := a.tourSweeper.Start(appCtx); err != nil {
			workerLogger.Error("Worker stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("tour session sweeper error: %w", err)
			return
		}
		workerLogger.Info("Worker stopped gracefully.", nil)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		workerLogger := a.logger.WithFields(port.Fields{"worker": "hero_session_sweeper"})
		if err := a.heroSweeper.Start(appCtx); err != nil {
			workerLogger.Error("Worker stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("hero session sweeper error: %w", err)
			return
		}
		workerLogger.Info("Worker stopped gracefully.", nil)
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or component error...", port.Fields{"port": a.config.Rest.PORT})

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return runErr
}
