package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Ollama    OllamaConfig
	Gemini    GeminiConfig
	Providers ProviderConfig
	Vector    VectorConfig
	Qdrant    QdrantConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// OllamaConfig points at the local model server. URL is the full generate
// endpoint; the client derives the other endpoints from its base.
type OllamaConfig struct {
	URL        string
	Model      string
	EmbedModel string
}

type GeminiConfig struct {
	APIKey string
}

// ProviderConfig selects which backend serves embeddings and commentary
// generation: "ollama" (default) or "gemini".
type ProviderConfig struct {
	Embedding string
	LLM       string
}

// VectorConfig selects the vector store backend: "file" (default) or "qdrant".
type VectorConfig struct {
	Backend string
	Dir     string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

type LogConfig struct {
	Dir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_screener"),
		},
		Ollama: OllamaConfig{
			URL:        getEnv("OLLAMA_URL", "http://127.0.0.1:11434/api/generate"),
			Model:      getEnv("OLLAMA_MODEL", "gemma3:1b"),
			EmbedModel: getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Providers: ProviderConfig{
			Embedding: getEnv("EMBEDDING_PROVIDER", "ollama"),
			LLM:       getEnv("LLM_PROVIDER", "ollama"),
		},
		Vector: VectorConfig{
			Backend: getEnv("VECTOR_BACKEND", "file"),
			Dir:     getEnv("VECTOR_DIR", "./storage/vectors"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_screener_docs"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./storage/uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 1),
		},
		Log: LogConfig{
			Dir: getEnv("LOG_DIR", "./storage"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
