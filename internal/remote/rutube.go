package remote

import "context"

// Rutube is a placeholder integration: the host exposes no stable public
// metadata endpoint, so titles fall back to the default and previews come
// from the caller's default image.
type Rutube struct{}

func NewRutube() *Rutube {
	return &Rutube{}
}

// VideoTitle returns def unconditionally.
// TODO: switch to the rutube api/video/{id} endpoint once access is sorted out.
func (r *Rutube) VideoTitle(ctx context.Context, videoID, def string) string {
	return def
}
