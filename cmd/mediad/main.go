// cmd/mediad/main.go
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ajur-media/fsnews.media/internal/bus"
	"github.com/ajur-media/fsnews.media/internal/config"
	"github.com/ajur-media/fsnews.media/internal/process"
	"github.com/ajur-media/fsnews.media/internal/worker"
	"github.com/ajur-media/fsnews.media/pkg/schema"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	busCfg := loadBusConfig()

	cfg, err := config.FromEnv()
	if err != nil {
		fatal(logger, "load config", err)
	}
	logger.Info("media daemon starting",
		"nats_url", busCfg.NATSURL,
		"job_subject", busCfg.JobSubject,
		"queue", busCfg.WorkerQueue,
		"result_subject", busCfg.ResultSubject,
		"storage_root", cfg.StorageRoot)

	dispatcher := worker.NewDispatcher(cfg, logger)

	nc, err := bus.Connect(busCfg.NATSURL)
	if err != nil {
		fatal(logger, "connect to NATS", err, "nats_url", busCfg.NATSURL)
	}
	logger.Info("connected to NATS", "nats_url", busCfg.NATSURL)
	defer nc.Close()

	_, err = nc.SubscribeQueueJSON(busCfg.JobSubject, busCfg.WorkerQueue, func(data []byte) {
		handleJob(context.Background(), data, busCfg, dispatcher, nc, logger)
	})
	if err != nil {
		fatal(logger, "subscribe worker", err, "job_subject", busCfg.JobSubject, "queue", busCfg.WorkerQueue)
	}
	logger.Info("listening for jobs", "subject", busCfg.JobSubject, "queue", busCfg.WorkerQueue)

	select {}
}

func handleJob(ctx context.Context, data []byte, busCfg busConfig, dispatcher *worker.Dispatcher, nc *bus.Client, logger *slog.Logger) {
	var req schema.UploadRequested
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Error("discarding malformed job payload", "err", err)
		return
	}
	if req.JobID == "" {
		req.JobID = uuid.NewString()
	}

	jobLogger := logger.With("job_id", req.JobID)
	jobLogger.Info("received job", "source", req.SourcePath, "watermark_corner", req.WatermarkCorner)

	job := process.NewJob(req.JobID, req.SourcePath)
	process.MarkRunning(job)
	start := time.Now()

	out, err := dispatcher.Upload(ctx, req.SourcePath, req.WatermarkCorner)
	if err != nil {
		process.MarkFailed(job, err)
		jobLogger.Error("upload failed", "source", req.SourcePath, "err", err)
	} else {
		job.MimeType = out.GetString("mime")
		process.MarkSucceeded(job)
		jobLogger.Info("upload finished",
			"source", req.SourcePath,
			"type", out.GetString("type"),
			"filename", out.GetString("filename"),
			"processing_time_ms", time.Since(start).Milliseconds())
	}

	done := schema.UploadDone{
		JobID:            job.ID,
		SourcePath:       job.SourcePath,
		MimeType:         job.MimeType,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Outcome:          out,
		HappenedAt:       time.Now().Unix(),
	}
	if err := nc.PublishJSON(busCfg.ResultSubject, done); err != nil {
		jobLogger.Error("publish result failed", "subject", busCfg.ResultSubject, "err", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, "err", err)
	logger.Error(msg, attrs...)
	os.Exit(1)
}
