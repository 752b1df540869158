package model

import (
	"fmt"
	"log"

	"github.com/byxorna/fable/pkg/config"
	"github.com/byxorna/fable/pkg/db/fs"
)

// NewFromConfig builds the model over the filesystem story repository in
// cfg.Directory.
func NewFromConfig(cfg *config.Config) (*Model, error) {
	loader, err := fs.New(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("error initializing story repository: %w", err)
	}
	log.Printf("reading stories from %s", loader.StoragePath())

	m := New(cfg, loader)
	return &m, nil
}
