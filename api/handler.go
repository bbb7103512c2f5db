package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/puanla/receipt-ocr-service/internal/models"
	"github.com/puanla/receipt-ocr-service/internal/parser"
	"github.com/puanla/receipt-ocr-service/internal/storage"
	"github.com/puanla/receipt-ocr-service/internal/vision"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	Version       = "1.3.0"
)

// Handler handles HTTP requests for receipt processing
type Handler struct {
	config     *models.Config
	recognizer vision.Provider
	store      *storage.Store
	httpClient *http.Client
}

// NewHandler creates a new API handler. store may be nil when object
// storage is not configured; in that case only http(s) image URLs work.
func NewHandler(config *models.Config, recognizer vision.Provider, store *storage.Store) *Handler {
	return &Handler{
		config:     config,
		recognizer: recognizer,
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ocr", h.ProcessOCR).Methods("POST")
	router.HandleFunc("/api/process-receipt", h.ProcessReceiptUpload).Methods("POST")
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// OCRRequest is the body of POST /ocr.
type OCRRequest struct {
	ImageURL string `json:"imageUrl"`
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Uptime    string        `json:"uptime"`
	Memory    MemoryStats   `json:"memory"`
	Vision    ServiceStatus `json:"vision"`
	Storage   ServiceStatus `json:"storage"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health endpoint - enhanced for monitoring
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	visionStatus := ServiceStatus{Available: h.recognizer != nil}
	if h.recognizer != nil {
		visionStatus.Version = h.recognizer.Name()
	} else {
		visionStatus.Error = "vision provider not initialized"
	}
	storageStatus := ServiceStatus{Available: h.store != nil, Version: "MinIO S3"}
	if h.store == nil {
		storageStatus = ServiceStatus{Available: false, Error: "storage client not initialized"}
	}

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		Vision:  visionStatus,
		Storage: storageStatus,
	}

	if !visionStatus.Available {
		response.Status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

// ProcessOCR handles POST /ocr: fetch the image, recognize its text, parse
// the receipt, and return the structured result.
func (h *Handler) ProcessOCR(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req OCRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		h.sendError(w, http.StatusBadRequest, "Missing imageUrl")
		return
	}

	imageData, contentType, err := h.fetchImage(ctx, req.ImageURL)
	if err != nil {
		log.Printf("image fetch failed for %s: %v", req.ImageURL, err)
		h.sendFailure(w, fmt.Sprintf("failed to fetch image: %v", err))
		return
	}

	rawText, err := h.recognizer.RecognizeText(ctx, imageData, contentType)
	if err != nil {
		log.Printf("text recognition failed for %s: %v", req.ImageURL, err)
		h.sendFailure(w, fmt.Sprintf("text recognition failed: %v", err))
		return
	}

	result := parser.Parse(rawText)
	log.Printf("parsed receipt: format=%s confidence=%.2f items=%d warnings=%d",
		result.Source.FormatDetected, result.Source.Confidence, len(result.Items), len(result.Source.Warnings))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// ProcessReceiptUpload handles multipart uploads: the image is stored in
// object storage, then processed the same way as /ocr.
func (h *Handler) ProcessReceiptUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		h.sendError(w, http.StatusBadRequest, "File too large or invalid form data")
		return
	}

	// Accept both "file" and "image" field names
	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("image")
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "No file provided (use 'file' or 'image' field)")
			return
		}
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	var storedObject string
	if h.store != nil {
		filename := fmt.Sprintf("%s_%s%s",
			time.Now().Format("20060102_150405"),
			uuid.New().String()[:8],
			storage.GetFileExtension(contentType),
		)
		storedObject, err = h.store.UploadReceiptImage(ctx, filename, bytes.NewReader(imageData), int64(len(imageData)), contentType)
		if err != nil {
			// Storage is best effort here; the parse still proceeds.
			log.Printf("warning: failed to upload image: %v", err)
			storedObject = ""
		}
	}

	rawText, err := h.recognizer.RecognizeText(ctx, imageData, contentType)
	if err != nil {
		log.Printf("text recognition failed for upload %s: %v", header.Filename, err)
		h.sendFailure(w, fmt.Sprintf("text recognition failed: %v", err))
		return
	}

	result := parser.Parse(rawText)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"result":        result,
		"stored_object": storedObject,
	})
}

// fetchImage resolves an image reference: http(s) URLs are downloaded,
// anything else is treated as an object path in the configured bucket.
func (h *Handler) fetchImage(ctx context.Context, ref string) ([]byte, string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, "", fmt.Errorf("invalid image url: %w", err)
		}
		resp, err := h.httpClient.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("image download failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("image download returned status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, MaxUploadSize))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image body: %w", err)
		}
		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		return data, contentType, nil
	}

	if h.store == nil {
		return nil, "", fmt.Errorf("object storage not configured, cannot resolve %q", ref)
	}
	return h.store.FetchImage(ctx, ref)
}

// sendError sends a simple error response
func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// sendFailure sends a processing failure with an Unknown-format result stub
// so clients always see the same response shape.
func (h *Handler) sendFailure(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
		"source": models.Source{
			FormatDetected: models.ChainUnknown.String(),
			Confidence:     0,
			Warnings:       []string{message},
		},
	})
}
