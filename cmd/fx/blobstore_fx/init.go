package blobstore_fx

import (
	"log"

	"fablink/internal/blobstore"
	"fablink/internal/config"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideFileStore)

func provideFileStore(cfg *config.Config) blobstore.FileStore {
	if cfg.S3.Bucket == "" {
		log.Println("No S3 bucket configured, attachments stored in memory")
		return blobstore.NewFakeFileStore()
	}

	store, err := blobstore.NewS3FileStore(cfg.S3.Region, cfg.S3.Bucket, cfg.S3.URLPrefix)
	if err != nil {
		log.Fatalf("Failed to initialize S3 file store: %v", err)
	}
	return store
}
