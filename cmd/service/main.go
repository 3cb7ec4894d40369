package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/internal"
	"github.com/2beens/healthstats/internal/config"
	"github.com/2beens/healthstats/internal/logging"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional dotenv file with secrets")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debugf("no env file loaded [%s]: %s", *envFile, err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        secrets.SentryDSN,
		SentryServerName: "healthstats-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	if secrets.GeminiAPIKey == "" {
		log.Errorf("gemini API key not set, use GEMINI_API_KEY env var to set it")
	}
	if secrets.GoogleClientConfigJSON == "" {
		log.Errorf("google client config not set, use GOOGLE_CLIENT_CONFIG_JSON env var to set it")
	}
	if secrets.ClientSecretHash == "" {
		log.Errorf("client secret hash not set, use HEALTHSTATS_CLIENT_SECRET_HASH env var to set it")
	}
	if secrets.RedisPassword == "" {
		log.Warnln("redis password not set. use HEALTHSTATS_REDIS_PASS")
	}

	if secrets.HoneycombEnabled {
		if secrets.HoneycombAPIKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		if secrets.OtelServiceName == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:  cfg,
			Secrets: secrets,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
