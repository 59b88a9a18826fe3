package worker

import (
	"context"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// AnyFile uploads allow-listed blobs that are neither image, audio nor video
// (documents, archives). No further processing is expected, so the resource
// is ready immediately.
type AnyFile struct {
	env *Env
}

func NewAnyFile(env *Env) *AnyFile {
	return &AnyFile{env: env}
}

func (f *AnyFile) Upload(ctx context.Context, src string) (*schema.Outcome, error) {
	return moveOnlyUpload(f.env, src, schema.MediaTypeFile, schema.StatusReady, "file")
}
