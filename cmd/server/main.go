package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/puanla/receipt-ocr-service/api"
	"github.com/puanla/receipt-ocr-service/internal/models"
	"github.com/puanla/receipt-ocr-service/internal/storage"
	"github.com/puanla/receipt-ocr-service/internal/vision"
)

func main() {
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	provider, err := buildProvider(config)
	if err != nil {
		log.Fatalf("Failed to initialize vision provider: %v", err)
	}
	recognizer := vision.NewRecognizer(provider,
		config.Vision.MaxAttempts,
		time.Duration(config.Vision.TimeoutSeconds)*time.Second,
	)
	log.Printf("Vision provider initialized: %s", provider.Name())

	var store *storage.Store
	if config.Storage.Endpoint != "" {
		store, err = storage.New(config.Storage)
		if err != nil {
			log.Printf("Warning: MinIO storage not available: %v", err)
			log.Println("Only http(s) image URLs will be accepted")
			store = nil
		} else {
			log.Println("MinIO storage initialized")
		}
	}

	handler := api.NewHandler(config, recognizer, store)
	router := handler.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Printf("Starting Receipt OCR Service v%s on %s", api.Version, addr)
	log.Printf("Vision provider: %s", config.Vision.DefaultProvider)
	log.Printf("Storage: %v", store != nil)
	log.Printf("Endpoints:")
	log.Printf("  POST http://%s/ocr                  - Parse receipt by image URL", addr)
	log.Printf("  POST http://%s/api/process-receipt  - Parse uploaded receipt image", addr)
	log.Printf("  GET  http://%s/health               - Health check", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildProvider creates the configured text-recognition provider.
func buildProvider(config *models.Config) (vision.Provider, error) {
	switch config.Vision.DefaultProvider {
	case "openai":
		return vision.NewOpenAIProvider(
			config.Vision.OpenAI.APIKey,
			config.Vision.OpenAI.BaseURL,
			config.Vision.OpenAI.Model,
		)
	case "gemini", "":
		return vision.NewGeminiProvider(
			config.Vision.Gemini.APIKey,
			config.Vision.Gemini.Model,
		)
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", config.Vision.DefaultProvider)
	}
}

func loadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config models.Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables if present
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &config.Port)
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Host = host
	}
	if provider := os.Getenv("VISION_PROVIDER"); provider != "" {
		config.Vision.DefaultProvider = provider
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Vision.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.Vision.Gemini.Model = model
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Vision.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.Vision.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.Vision.OpenAI.Model = model
	}
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		config.Storage.Endpoint = endpoint
	}
	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		config.Storage.AccessKey = accessKey
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		config.Storage.SecretKey = secretKey
	}
	if bucket := os.Getenv("MINIO_BUCKET"); bucket != "" {
		config.Storage.Bucket = bucket
	}
	if os.Getenv("MINIO_USE_SSL") == "true" {
		config.Storage.UseSSL = true
	}

	return &config, nil
}
