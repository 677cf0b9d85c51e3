package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cat-resume-api/internal/insights"
	"cat-resume-api/internal/llm"
	"cat-resume-api/internal/llm/claude"
	openai "cat-resume-api/internal/llm/openai"
	"cat-resume-api/internal/media"
	"cat-resume-api/internal/replicate"
	"cat-resume-api/internal/resumes"
	"cat-resume-api/internal/shared/config"
	"cat-resume-api/internal/shared/server"
	"cat-resume-api/internal/shared/storage/db"
	"cat-resume-api/internal/shared/storage/object"
	localstore "cat-resume-api/internal/shared/storage/object/local"
	s3store "cat-resume-api/internal/shared/storage/object/s3"
	"cat-resume-api/internal/shared/telemetry"
	"cat-resume-api/internal/uploads"
)

const defaultOpenAIModel = "gpt-4"

// App holds shared dependencies and the wired router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Repo    resumes.Repo
	Service *resumes.Service
	Handler *resumes.Handler
}

// Build prepares every dependency and wires the routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	jobProfile, err := config.LoadJobProfile(cfg.JobProfilePath)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	generator, err := buildMedia(cfg, store)
	if err != nil {
		return nil, err
	}

	spool, err := uploads.NewSpool(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	svc := &resumes.Service{
		Analyzer:     insights.NewAnalyzer(llmClient, insights.NewProfile(jobProfile), cfg.LLMMaxTokens),
		Media:        generator,
		Repo:         repo,
		VideoEnabled: cfg.VideoEnabled,
	}
	handler := resumes.NewHandler(svc, spool)

	deps := server.RouterDeps{
		Config:        cfg,
		ResumeHandler: handler,
		Audio:         media.NewAudioHandler(store),
	}
	if sqlDB != nil {
		deps.Ping = sqlDB.PingContext
	}

	return &App{
		Config:  cfg,
		Router:  server.NewRouter(deps),
		DB:      sqlDB,
		Store:   store,
		Repo:    repo,
		Service: svc,
		Handler: handler,
	}, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.db_disabled", map[string]any{"reason": "DATABASE_URL empty; analysis history kept in memory"})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db_connect_failed", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildStore returns the media store; /audio reads back through it for every backend.
func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, s3store.Config{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.MediaDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"provider": cfg.LLMProvider})
			return llm.PlaceholderClient{}, nil
		}
		return claude.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel, cfg.LLMMaxTokens)
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"provider": cfg.LLMProvider})
			return llm.PlaceholderClient{}, nil
		}
		model := cfg.LLMModel
		if strings.TrimSpace(model) == "" {
			model = defaultOpenAIModel
		}
		return openai.NewClient(cfg.OpenAIAPIKey, model, cfg.HTTPTimeout)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func buildMedia(cfg config.Config, store object.ObjectStore) (*media.Generator, error) {
	gen := &media.Generator{
		Store:   store,
		BaseURL: cfg.MediaBaseURL,
		Models: media.Models{
			Image:        cfg.ReplicateImageModel,
			ImageToVideo: cfg.ReplicateVideoModel,
			TextToVideo:  cfg.ReplicateTextVideoModel,
		},
	}

	if strings.TrimSpace(cfg.ReplicateAPIToken) != "" {
		client, err := replicate.New(cfg.ReplicateAPIToken, cfg.HTTPTimeout, cfg.ReplicatePollInterval)
		if err != nil {
			return nil, err
		}
		gen.Predictor = client
	} else {
		telemetry.Warn("bootstrap.replicate_unconfigured", map[string]any{"stages": "image,video"})
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		speaker, err := openai.NewSpeaker(cfg.OpenAIAPIKey, cfg.TTSModel, cfg.TTSVoice, cfg.HTTPTimeout)
		if err != nil {
			return nil, err
		}
		gen.Speech = speaker
	} else {
		telemetry.Warn("bootstrap.speech_unconfigured", map[string]any{"stages": "audio"})
	}

	return gen, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
