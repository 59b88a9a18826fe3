// internal/process/job.go
package process

// JobStatus represents the lifecycle state of one upload job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Job captures the minimal metadata the daemon tracks per upload for
// auditing purposes.
type Job struct {
	ID         string
	SourcePath string
	MimeType   string
	Status     JobStatus
	Error      string
}

func NewJob(id, sourcePath string) *Job {
	return &Job{
		ID:         id,
		SourcePath: sourcePath,
		Status:     JobStatusPending,
	}
}

func MarkRunning(j *Job)   { j.Status = JobStatusRunning }
func MarkSucceeded(j *Job) { j.Status = JobStatusSucceeded }
func MarkFailed(j *Job, err error) {
	j.Status = JobStatusFailed
	if err != nil {
		j.Error = err.Error()
	}
}
