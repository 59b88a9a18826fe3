// pkg/schema/outcome.go
package schema

import "fmt"

// MediaType names a content category. The value doubles as the default
// storage subdirectory name.
type MediaType string

const (
	MediaTypeTitle   MediaType = "titles"
	MediaTypePhoto   MediaType = "photos"
	MediaTypeVideo   MediaType = "videos"
	MediaTypeAudio   MediaType = "audios"
	MediaTypeFile    MediaType = "files"
	MediaTypeYoutube MediaType = "youtube"
)

// Resource status values. Pending resources wait for an out-of-process
// batch job (audio transcode, video postprocessing).
const (
	StatusPending = "pending"
	StatusReady   = "ready"
)

// GeneratedFile describes one derivative actually written to disk.
type GeneratedFile struct {
	SizeKey    string  `json:"size"`
	Target     string  `json:"target"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Quality    int     `json:"quality,omitempty"`
	Command    string  `json:"cmd,omitempty"`
	ElapsedSec float64 `json:"execution_time,omitempty"`
}

// Outcome is the uniform success/failure container returned by every public
// media operation. Data is a free-form bag keyed by well-known names
// ("radix", "filename", "status", "type", "thumbnails", ...).
type Outcome struct {
	OK           bool           `json:"ok"`
	Data         map[string]any `json:"data,omitempty"`
	Messages     []string       `json:"messages,omitempty"`
	ErrorMessage string         `json:"error,omitempty"`
}

func NewOutcome() *Outcome {
	return &Outcome{OK: true, Data: make(map[string]any)}
}

// Fail marks the outcome failed and records the message. Returns the outcome
// for chaining at return sites.
func (o *Outcome) Fail(format string, args ...any) *Outcome {
	o.OK = false
	o.ErrorMessage = fmt.Sprintf(format, args...)
	return o
}

func (o *Outcome) AddMessage(format string, args ...any) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, args...))
}

func (o *Outcome) SetData(key string, value any) {
	if o.Data == nil {
		o.Data = make(map[string]any)
	}
	o.Data[key] = value
}

func (o *Outcome) GetData(key string) any {
	return o.Data[key]
}

func (o *Outcome) GetString(key string) string {
	if v, ok := o.Data[key].(string); ok {
		return v
	}
	return ""
}

func (o *Outcome) GetInt(key string) int {
	switch v := o.Data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Thumbnails returns the derivative list recorded under "thumbnails".
func (o *Outcome) Thumbnails() []GeneratedFile {
	if v, ok := o.Data["thumbnails"].([]GeneratedFile); ok {
		return v
	}
	return nil
}

// AddThumbnail appends one derivative record to the "thumbnails" list.
func (o *Outcome) AddThumbnail(gf GeneratedFile) {
	o.SetData("thumbnails", append(o.Thumbnails(), gf))
}
