package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultEmbedTimeout bounds one embedding request.
const defaultEmbedTimeout = 30 * time.Second

// HTTPEmbedder implements Embedder against a face recognition HTTP service.
// The service accepts a base64-encoded face crop and answers with the
// fixed-length descriptor, or face_found=false when it sees no face.
type HTTPEmbedder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// embedRequest is the wire format of an embedding request.
type embedRequest struct {
	Image string `json:"image"` // base64-encoded PNG or JPEG
}

// embedResponse is the wire format of an embedding response.
type embedResponse struct {
	FaceFound  bool      `json:"face_found"`
	Descriptor []float64 `json:"descriptor,omitempty"`
	Quality    float64   `json:"quality,omitempty"`
}

// NewHTTPEmbedder creates an embedder client for the service at baseURL.
// apiKey may be empty for unauthenticated deployments.
func NewHTTPEmbedder(baseURL, apiKey string) *HTTPEmbedder {
	return &HTTPEmbedder{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultEmbedTimeout,
		},
	}
}

// Embed returns the descriptor for a face crop, or (nil, nil) when the
// service finds no face in it.
func (e *HTTPEmbedder) Embed(ctx context.Context, faceImage []byte) (Descriptor, error) {
	const op = "Embed"

	body, err := json.Marshal(embedRequest{
		Image: base64.StdEncoding.EncodeToString(faceImage),
	})
	if err != nil {
		return nil, WrapError(op, err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/faces/embed", bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(op, err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, WrapError(op, ErrEmbeddingFailed, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, WrapError(op, ErrEmbeddingFailed,
			fmt.Sprintf("service returned %d: %s", resp.StatusCode, bytes.TrimSpace(payload)))
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(op, ErrEmbeddingFailed, fmt.Sprintf("failed to decode response: %v", err))
	}

	if !result.FaceFound || len(result.Descriptor) == 0 {
		return nil, nil
	}
	return Descriptor(result.Descriptor), nil
}
