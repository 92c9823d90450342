package meta

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

// Service loads YAML resources from any afs location
type Service struct {
	fs afs.Service
}

// Load reads URL, expands env expressions and decodes the YAML into dest.
// Fields absent from the resource keep the values dest already holds.
// Options are passed to afs, e.g. an *embed.FS for embed:// URLs.
func (s *Service) Load(ctx context.Context, URL string, dest interface{}, options ...storage.Option) error {
	data, err := s.fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return errors.Wrapf(err, "failed to download %v", URL)
	}
	if err = yaml.Unmarshal([]byte(ExpandEnv(string(data))), dest); err != nil {
		return errors.Wrapf(err, "failed to decode %v", URL)
	}
	return nil
}

// New creates a meta service; nil fs falls back to afs.New().
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
