package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	coreConfig "github.com/AzielCF/az-presence/core/config"
	coreDB "github.com/AzielCF/az-presence/core/database"
	"github.com/AzielCF/az-presence/core/settings"
	domainHealth "github.com/AzielCF/az-presence/domains/health"
	domainPresence "github.com/AzielCF/az-presence/domains/presence"
	domainTyping "github.com/AzielCF/az-presence/domains/typing"
	domainUnread "github.com/AzielCF/az-presence/domains/unread"
	"github.com/AzielCF/az-presence/infrastructure/presencestore"
	"github.com/AzielCF/az-presence/infrastructure/valkey"
	"github.com/AzielCF/az-presence/pkg/utils"
	"github.com/AzielCF/az-presence/ui/websocket"
	"github.com/AzielCF/az-presence/usecase"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Usecase
	presenceUsecase domainPresence.IPresenceUsecase
	typingUsecase   domainTyping.ITypingUsecase
	unreadUsecase   domainUnread.IUnreadUsecase
	healthUsecase   domainHealth.IHealthUsecase

	settingsSvc *settings.Service
	vkClient    *valkey.Client
	serverID    string

	cleanupCancel context.CancelFunc

	// Flag overrides applied on top of the env config
	flagPort           string
	flagDebug          bool
	flagBasicAuth      []string
	flagDBDriver       string
	flagDBName         string
	flagStaleTimeoutMs int64
	flagTypingTTLMs    int64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Short: "Presence and staleness tracker API",
	Long: `Tracks room heartbeats, declared statuses, typing indicators and
unread counters, and serves the derived presence over http and websocket.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Initialize flags first, before any subcommands are added
	initFlags()

	// Then initialize other components
	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig folds viper-visible environment overrides into the process
// environment before the structured config is loaded.
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		_ = os.Setenv("APP_PORT", envPort)
	}
	if viper.GetBool("app_debug") {
		_ = os.Setenv("APP_DEBUG", "true")
	}
	if envBasicAuth := viper.GetString("app_basic_auth"); envBasicAuth != "" {
		_ = os.Setenv("APP_BASIC_AUTH", envBasicAuth)
	}
	if envDriver := viper.GetString("db_driver"); envDriver != "" {
		_ = os.Setenv("DB_DRIVER", envDriver)
	}
	if envDBName := viper.GetString("db_name"); envDBName != "" {
		_ = os.Setenv("DB_NAME", envDBName)
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&flagBasicAuth,
		"basic-auth", "b",
		nil,
		"basic auth credential | -b=yourUsername:yourPassword",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flagDBDriver,
		"db-driver", "",
		"",
		`database driver --db-driver <string> | example: --db-driver="sqlite" or --db-driver="postgres"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&flagDBName,
		"db-name", "",
		"",
		`database file path (sqlite) or database name (postgres) --db-name <string> | example: --db-name="storages/presence.db"`,
	)
	rootCmd.PersistentFlags().Int64VarP(
		&flagStaleTimeoutMs,
		"stale-timeout-ms", "",
		0,
		`lastSeen fallback window in milliseconds --stale-timeout-ms <number> | example: --stale-timeout-ms=30000`,
	)
	rootCmd.PersistentFlags().Int64VarP(
		&flagTypingTTLMs,
		"typing-ttl-ms", "",
		0,
		`typing indicator time-to-live in milliseconds --typing-ttl-ms <number> | example: --typing-ttl-ms=5000`,
	)
}

func initApp() {
	applyFlagOverrides()

	cfg, err := coreConfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.Debugf("[CONFIG] %v", coreConfig.GetAllSettings())
	}

	// preparing folder if not exist
	if err := utils.CreateFolder(cfg.Paths.Storages); err != nil {
		logrus.Errorln(err)
	}

	db, err := coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	if err := presencestore.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate presence tables: %v", err)
	}

	settingsSvc = settings.NewService(db)

	serverID = utils.GetPersistentServerID(cfg.App.ServerID, cfg.Paths.Storages)

	if cfg.Database.ValkeyEnabled {
		vkClient, err = valkey.NewClient(valkey.Config{
			Address:   cfg.Database.ValkeyAddress,
			Password:  cfg.Database.ValkeyPassword,
			DB:        cfg.Database.ValkeyDB,
			KeyPrefix: cfg.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Errorf("[VALKEY] Connection failed, continuing without distributed fan-out: %v", err)
			vkClient = nil
		}
	}

	heartbeatRepo := presencestore.NewHeartbeatGormRepository(db)
	statusRepo := presencestore.NewStatusGormRepository(db)
	typingRepo := presencestore.NewTypingGormRepository(db)
	unreadRepo := presencestore.NewUnreadGormRepository(db)

	presenceUsecase = usecase.NewPresenceService(heartbeatRepo, statusRepo, settingsSvc)
	typingUsecase = usecase.NewTypingService(typingRepo, settingsSvc)
	unreadUsecase = usecase.NewUnreadService(unreadRepo)
	healthUsecase = usecase.NewHealthService(db, vkClient)

	// Every committed mutation fans out through the websocket hub.
	presenceUsecase.SetEventSink(websocket.Publish)
	typingUsecase.SetEventSink(websocket.Publish)
	unreadUsecase.SetEventSink(websocket.Publish)

	var cleanupCtx context.Context
	cleanupCtx, cleanupCancel = context.WithCancel(context.Background())
	presenceUsecase.StartBackgroundCleanup(cleanupCtx)
}

func applyFlagOverrides() {
	if flagPort != "" {
		_ = os.Setenv("APP_PORT", flagPort)
	}
	if flagDebug {
		_ = os.Setenv("APP_DEBUG", "true")
	}
	if len(flagBasicAuth) > 0 {
		_ = os.Setenv("APP_BASIC_AUTH", strings.Join(flagBasicAuth, ","))
	}
	if flagDBDriver != "" {
		_ = os.Setenv("DB_DRIVER", flagDBDriver)
	}
	if flagDBName != "" {
		_ = os.Setenv("DB_NAME", flagDBName)
	}
	if flagStaleTimeoutMs > 0 {
		_ = os.Setenv("PRESENCE_STALE_TIMEOUT_MS", strconv.FormatInt(flagStaleTimeoutMs, 10))
	}
	if flagTypingTTLMs > 0 {
		_ = os.Setenv("TYPING_TTL_MS", strconv.FormatInt(flagTypingTTLMs, 10))
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of all subsystems.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if cleanupCancel != nil {
		cleanupCancel()
	}

	if vkClient != nil {
		vkClient.Close()
	}

	if coreDB.GlobalDB != nil {
		if sqlDB, err := coreDB.GlobalDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
