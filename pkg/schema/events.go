// pkg/schema/events.go
package schema

// UploadRequested asks the media daemon to ingest a file already present on
// shared storage. WatermarkCorner is forwarded to the photo pipeline only
// (0 disables watermarking, 1..4 select a corner).
type UploadRequested struct {
	JobID           string `json:"job_id"`
	SourcePath      string `json:"source_path"`
	WatermarkCorner int    `json:"watermark_corner,omitempty"`
	PostedAt        int64  `json:"posted_at"`
}

// UploadDone reports the outcome of one upload job.
type UploadDone struct {
	JobID            string   `json:"job_id"`
	SourcePath       string   `json:"source_path"`
	MimeType         string   `json:"mime_type,omitempty"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
	Outcome          *Outcome `json:"outcome"`
	HappenedAt       int64    `json:"happened_at"`
}
