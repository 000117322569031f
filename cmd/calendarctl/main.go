// calendarctl консольный календарь записи поверх HTTP API слотов.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m04kA/SMC-BookingCalendar/internal/config"
	"github.com/m04kA/SMC-BookingCalendar/internal/console"
	"github.com/m04kA/SMC-BookingCalendar/internal/controller"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/slotservice"
	"github.com/m04kA/SMC-BookingCalendar/pkg/logger"
	"github.com/m04kA/SMC-BookingCalendar/pkg/metrics"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	professionalID := flag.Int64("professional", 0, "professional ID (overrides slot_service.professional_id)")
	offline := flag.Bool("offline", false, "generate slots from working hours instead of calling the slot service")
	metricsFile := flag.String("metrics-file", "", "write slot cache metrics in Prometheus text format to this file on exit")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Логи пишем в файл из конфигурации (или никуда), чтобы не смешивать с выводом календаря
	log := logger.NewNop()
	if cfg.Logs.File != "" {
		fileLog, err := logger.NewFile(cfg.Logs.File, cfg.Logs.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		log = fileLog
	}
	defer log.Close()

	settings, err := cfg.Calendar.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid calendar settings: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []controller.Option{
		controller.WithLogger(log),
		controller.WithContext(ctx),
		controller.WithOnSlotsLoaded(func(date types.DateKey, slots []domain.Slot) {
			log.Info("calendarctl: slots loaded date=%s count=%d", date, len(slots))
		}),
		controller.WithOnSlotsError(func(date types.DateKey, err error) {
			log.Warn("calendarctl: slots failed date=%s: %v", date, err)
		}),
	}

	// Метрики кэша слотов: отдельный реестр, выгружается в файл при выходе
	var registry *prometheus.Registry
	if *metricsFile != "" {
		registry = prometheus.NewRegistry()
		opts = append(opts, controller.WithMetrics(metrics.NewWithRegistry(cfg.Metrics.ServiceName, registry)))
	}

	var exceptions []*domain.DateException
	if !*offline {
		id := cfg.SlotService.ProfessionalID
		if *professionalID != 0 {
			id = *professionalID
		}
		if id <= 0 {
			fmt.Fprintln(os.Stderr, "professional ID is required: set slot_service.professional_id or -professional")
			os.Exit(1)
		}

		client := slotservice.NewClient(
			cfg.SlotService.URL,
			id,
			time.Duration(cfg.SlotService.Timeout)*time.Second,
			log,
		)
		opts = append(opts, controller.WithLoader(client.LoadSlots))
		log.Info("calendarctl: using slot service %s professional_id=%d", cfg.SlotService.URL, id)

		// Исключения мастера входят в конфигурацию календаря, как на сервере
		exceptions, err = client.LoadExceptions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load calendar exceptions: %v\n", err)
			os.Exit(1)
		}
	}

	ctrl, err := controller.New(controller.ConfigFromSettings(settings, exceptions), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create calendar: %v\n", err)
		os.Exit(1)
	}

	session := console.NewSession(ctrl, os.Stdout)
	if err := session.Exec(ctx, "show"); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	runErr := session.Run(ctx, os.Stdin)

	if registry != nil {
		if err := prometheus.WriteToTextfile(*metricsFile, registry); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write metrics: %v\n", err)
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
