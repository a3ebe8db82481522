package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/MeKo-Tech/langid/internal/langid"
	"github.com/MeKo-Tech/langid/internal/textutil"
	"github.com/MeKo-Tech/langid/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// languagesHandler returns the loaded reference languages.
func (s *Server) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	languages := make([]LanguageInfo, len(s.set.Profiles))
	for i, p := range s.set.Profiles {
		languages[i] = LanguageInfo{
			Code:     p.Code,
			Name:     p.Name,
			Trigrams: len(p.Profile),
		}
	}

	response := LanguagesResponse{
		Languages: languages,
		Count:     len(languages),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding languages response: %v\n", err)
	}
}

// identifyHandler identifies the language of an uploaded text. The input is
// either a raw request body or a multipart "file" field.
func (s *Server) identifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	data, source, err := readIdentifyInput(r, s.maxUploadMB*1024*1024)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		s.writeErrorResponse(w, "empty input", http.StatusBadRequest)
		return
	}

	text, err := textutil.FromBytes(data)
	if err != nil {
		s.writeErrorResponse(w, "input is not decodable text", http.StatusUnprocessableEntity)
		return
	}

	response := s.identify(text, source, len(data))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding identify response: %v\n", err)
	}
}

// identify runs the decision rule and records metrics. Shared by the HTTP
// and WebSocket handlers.
func (s *Server) identify(text textutil.Text, source string, size int) IdentifyResponse {
	start := time.Now()
	matches := langid.Rank(text, s.set.Profiles, s.opts)
	code := langid.Decide(matches, s.opts)
	duration := time.Since(start)

	response := IdentifyResponse{
		Language: code,
		Matches:  matches,
		Bytes:    size,
		Duration: duration.Milliseconds(),
	}
	if len(matches) > 0 {
		response.Score = matches[0].Score
	}
	if code != langid.Unknown {
		response.Name = s.set.Name(code)
	}

	identifyRequestsTotal.WithLabelValues(source, code).Inc()
	identifyDuration.WithLabelValues(source).Observe(duration.Seconds())
	identifyTextBytes.Observe(float64(size))
	identifyBestScore.Observe(response.Score)

	return response
}

// readIdentifyInput extracts the text payload from the request.
func readIdentifyInput(r *http.Request, limit int64) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(limit); err != nil {
			return nil, "", fmt.Errorf("failed to parse form data: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("missing file field: %w", err)
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, textutil.MaxFileBytes))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return data, "file", nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read request body: %w", err)
	}
	return data, "text", nil
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding error response: %v\n", err)
	}
}
