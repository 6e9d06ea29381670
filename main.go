package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/mediabox/mediabox_server/internal"
	"github.com/mediabox/mediabox_server/internal/chat"
	"github.com/mediabox/mediabox_server/internal/health"
	"github.com/mediabox/mediabox_server/internal/media"
	"github.com/mediabox/mediabox_server/internal/storage"
)

func main() {
	config, err := internal.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
		return
	}

	// Backing stores are initialized up front; an unwritable directory
	// is fatal, not discovered on the first upload.
	blobs, err := newBackend(config, config.UploadDir, "uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing upload store")
		return
	}
	thumbs, err := newBackend(config, config.ThumbDir, "thumbs")
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing thumbnail store")
		return
	}

	db, err := internal.NewDB(config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing database")
		return
	}

	repo := media.NewSQLRepository(db)
	validator := media.NewValidator(config.MaxFileSize)
	mediaService := media.NewService(repo, blobs, thumbs, validator, config.BaseURL)
	mediaEndpoints := media.NewEndpoints(mediaService)
	healthEndpoints := health.NewEndpoints("1.0.0")

	var chatEndpoints *chat.Endpoints
	if config.Chat.APIKey != "" {
		history := chat.NewHistory(config.Chat.MaxHistory)
		relay := chat.NewRelay(config.Chat.Endpoint, config.Chat.APIKey, config.Chat.Model, history)
		chatEndpoints = chat.NewEndpoints(relay)
		log.Info().Str("model", config.Chat.Model).Msg("Chat relay enabled")
	}

	requestHandler := internal.NewRequestHandler(config, mediaEndpoints, healthEndpoints, chatEndpoints)

	server := &fasthttp.Server{
		Handler: requestHandler,
		// Room for a full batch of max-size files plus multipart framing.
		MaxRequestBodySize: int(config.MaxFileSize)*8 + 1024*1024,
	}

	log.Info().Int("port", config.Port).Msg("Server running")
	if err := server.ListenAndServe(fmt.Sprintf(":%d", config.Port)); err != nil {
		log.Fatal().Err(err).Msg("Error starting server")
	}
}

func newBackend(config *internal.Config, localPath, s3Prefix string) (storage.Backend, error) {
	return storage.NewBackend(&storage.BackendConfig{
		Type:        storage.Type(config.Storage.Backend),
		LocalPath:   localPath,
		S3Endpoint:  config.Storage.S3Endpoint,
		S3Bucket:    config.Storage.S3Bucket,
		S3AccessKey: config.Storage.S3AccessKey,
		S3SecretKey: config.Storage.S3SecretKey,
		S3Region:    config.Storage.S3Region,
		S3UseSSL:    config.Storage.S3UseSSL,
		S3Prefix:    s3Prefix,
	})
}
