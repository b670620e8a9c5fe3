// Vervoer Companion Daemon
//
// vervoerd is the on-device companion for the Vervoer health wearable. It
// owns the authentication session against the remote Vervoer backend, guards
// the UI shell's navigation, evaluates live vitals against their safe ranges,
// and exposes a local REST/WebSocket API the shell renders from.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/souhardya/vervoer-core/migrations"

	"github.com/souhardya/vervoer-core/internal/alerts"
	"github.com/souhardya/vervoer-core/internal/api"
	"github.com/souhardya/vervoer-core/internal/backend"
	"github.com/souhardya/vervoer-core/internal/infrastructure/config"
	"github.com/souhardya/vervoer-core/internal/infrastructure/database"
	"github.com/souhardya/vervoer-core/internal/infrastructure/influxdb"
	"github.com/souhardya/vervoer-core/internal/infrastructure/logging"
	"github.com/souhardya/vervoer-core/internal/infrastructure/mqtt"
	"github.com/souhardya/vervoer-core/internal/nav"
	"github.com/souhardya/vervoer-core/internal/session"
	"github.com/souhardya/vervoer-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Vervoer companion",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Session store and backend client reference each other: the client
	// reads the current token from the store on every request, and the
	// store uses the client to refetch the profile.
	tokens := session.NewSQLiteTokenStorage(db.DB)
	var sessions *session.Store
	remote := backend.New(cfg.Backend, func() string { return sessions.TokenString() })
	sessions = session.NewStore(tokens, remote, log)

	// Restore any persisted session before anything observes the store.
	sessions.Refresh(ctx)
	log.Info("session restored", "state", string(sessions.Snapshot().State()))

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled, vitals history will not be recorded")
	}

	// Alert pipeline
	thresholds := alerts.ThresholdsFromConfig(cfg.Thresholds)
	alertLog := alerts.NewLog(0)
	notifier := alerts.NewMQTTNotifier(mqttClient, cfg.Device.ID)
	evaluator := alerts.NewEvaluator(thresholds, alertLog, notifier, log)

	// WebSocket hub is shared between the API server and the route guard.
	hub := api.NewHub(cfg.WebSocket, log)

	// Route guard
	guard := nav.NewGuard(sessions, nav.SinkFunc(func(r nav.Redirect) {
		hub.Broadcast(api.ChannelNavRedirect, r)
	}), log)
	go guard.Run(ctx)

	// Telemetry monitor feeds the evaluator from the wearable's topics.
	var recorder telemetry.Recorder
	if influxClient != nil {
		recorder = influxClient
	}
	monitor := telemetry.NewMonitor(cfg.Device.ID, mqttClient, evaluator, thresholds, recorder, hub, log)
	if startErr := monitor.Start(); startErr != nil {
		return fmt.Errorf("starting telemetry monitor: %w", startErr)
	}
	log.Info("telemetry monitor started", "device", cfg.Device.ID)

	// Local API server
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		WS:        cfg.WebSocket,
		Logger:    log,
		Sessions:  sessions,
		Tokens:    tokens,
		Backend:   remote,
		Guard:     guard,
		Evaluator: evaluator,
		AlertLog:  alertLog,
		History:   influxClient,
		DeviceID:  cfg.Device.ID,
		Hub:       hub,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	go hub.Run(ctx)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT
	// 4. Database

	log.Info("Vervoer companion stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses VERVOER_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("VERVOER_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
