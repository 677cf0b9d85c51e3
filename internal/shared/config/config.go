package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration.
type Config struct {
	Port            string `validate:"required"`
	Env             string `validate:"oneof=dev local staging production"`
	CORSAllowOrigin []string

	UploadDir      string `validate:"required"`
	MaxUploadBytes int64  `validate:"gt=0"`
	MediaDir       string `validate:"required"`
	MediaBaseURL   string `validate:"required,url"`

	ObjectStoreType string `validate:"oneof=local s3"`
	AWSRegion       string
	S3Bucket        string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix        string
	SSEKMSKeyID     string
	S3Endpoint      string `validate:"omitempty,url"`

	LLMProvider     string `validate:"oneof=anthropic openai none"`
	LLMModel        string
	LLMMaxTokens    int64 `validate:"gt=0"`
	AnthropicAPIKey string
	OpenAIAPIKey    string

	TTSModel string `validate:"required"`
	TTSVoice string `validate:"required"`

	ReplicateAPIToken       string
	ReplicateImageModel     string `validate:"required"`
	ReplicateVideoModel     string `validate:"required"`
	ReplicateTextVideoModel string `validate:"required"`
	ReplicatePollInterval   time.Duration
	VideoEnabled            bool

	HTTPTimeout        time.Duration
	RateLimitPerMinute int `validate:"gte=0"`
	JobProfilePath     string
	DatabaseURL        string
}

var validate = validator.New()

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	port := getEnv("PORT", "8080")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL not set in production; analysis history kept in memory")
	}

	return Config{
		Port:            port,
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 5<<20),
		MediaDir:       getEnv("MEDIA_DIR", "./media"),
		MediaBaseURL:   strings.TrimRight(getEnv("MEDIA_BASE_URL", "http://localhost:"+port), "/"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),

		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "anthropic")),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMMaxTokens:    getEnvInt64("LLM_MAX_TOKENS", 1000),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),

		TTSModel: getEnv("TTS_MODEL", "tts-1"),
		TTSVoice: getEnv("TTS_VOICE", "alloy"),

		ReplicateAPIToken:       getEnv("REPLICATE_API_TOKEN", ""),
		ReplicateImageModel:     getEnv("REPLICATE_IMAGE_MODEL", "stability-ai/sdxl:c221b2b8ef527988fb59bf24a8b97c4561f1c671f73bd389f866bfb27c061316"),
		ReplicateVideoModel:     getEnv("REPLICATE_VIDEO_MODEL", "stability-ai/stable-video-diffusion:3f0457e4619daac51203dedb472816fd4af51f3149fa7a9e0b5ffcf1b8172438"),
		ReplicateTextVideoModel: getEnv("REPLICATE_TEXT_VIDEO_MODEL", "anotherjesse/zeroscope-v2-xl:9f747673945c62801b13b84701c783929c0ee784e4748ec062204894dda1a351"),
		ReplicatePollInterval:   getEnvDuration("REPLICATE_POLL_INTERVAL", time.Second),
		VideoEnabled:            getEnvBool("VIDEO_ENABLED", false),

		HTTPTimeout:        time.Duration(getEnvInt64("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
		RateLimitPerMinute: int(getEnvInt64("RATE_LIMIT_PER_MINUTE", 10)),
		JobProfilePath:     getEnv("JOB_PROFILE_PATH", ""),
		DatabaseURL:        dbURL,
	}
}

// Validate checks the loaded configuration for missing or inconsistent values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config env %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config env %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "placeholder", "":
		return "none"
	default:
		return "anthropic"
	}
}
