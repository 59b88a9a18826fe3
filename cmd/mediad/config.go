package main

import "os"

type busConfig struct {
	NATSURL       string
	JobSubject    string
	WorkerQueue   string
	ResultSubject string
}

func loadBusConfig() busConfig {
	return busConfig{
		NATSURL:       getenv("NATS_URL", "nats://127.0.0.1:4222"),
		JobSubject:    getenv("MEDIA_JOB_SUBJECT", "media.upload.requested"),
		WorkerQueue:   getenv("MEDIA_WORKER_QUEUE", "media-workers"),
		ResultSubject: getenv("MEDIA_RESULT_SUBJECT", "media.upload.done"),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
