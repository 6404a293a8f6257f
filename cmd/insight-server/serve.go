package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"supplychain-insights/internal/common/camunda"
	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/server"
	answerquestion "supplychain-insights/internal/workers/ai-conversation/answer-question"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and, when enabled, the Zeebe job worker",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override server.port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	var worker *camunda.Worker
	if cfg.Camunda.Enabled {
		w, client, err := startWorker(ctx, a)
		if err != nil {
			return err
		}
		defer client.Close()
		worker = w
	}

	srv := server.New(server.Options{
		App:          cfg.App,
		Server:       cfg.Server,
		Answerer:     a.answerer,
		Dashboard:    a.dashboard,
		Models:       a.predictors,
		Generator:    a.generator,
		Capabilities: a.capabilities,
		Logger:       a.log,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		a.log.Info("shutting down", nil)
	}

	if worker != nil {
		worker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		err = errors.Join(err, shutdownErr)
	}
	return err
}

func startWorker(ctx context.Context, a *app) (*camunda.Worker, *camunda.Client, error) {
	client, err := camunda.NewClientWithConfig(ctx, camunda.ClientConfigFrom(a.cfg.Camunda))
	if err != nil {
		return nil, nil, err
	}

	workerCfg := answerquestion.LoadConfig(config.GetWorkerConfig(a.cfg, answerquestion.TaskType))
	w := camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
		TaskType:      answerquestion.TaskType,
		MaxJobsActive: workerCfg.MaxJobsActive,
		Timeout:       workerCfg.Timeout,
	}, a.answerer, a.log)
	return w, client, nil
}
