package receiver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/config"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/gosdk/logger"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 4096

// StatusError is a non-2xx answer from the receiving backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("receiver responded %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("receiver responded %d: %s", e.Code, e.Message)
}

// HTTPAdapter talks to the chunk receiver and finalizer over HTTP. Every
// call is independent: a failed request never affects later ones.
type HTTPAdapter struct {
	client      *http.Client
	chunkURL    string
	finalizeURL string
}

var (
	_ port.ChunkReceiver = (*HTTPAdapter)(nil)
	_ port.Finalizer     = (*HTTPAdapter)(nil)
)

// NewHTTPAdapter builds an adapter for cfg. A nil client uses a default
// client without a global timeout; deadlines come from the caller's context.
func NewHTTPAdapter(cfg config.ReceiverConfig, client *http.Client) (*HTTPAdapter, error) {
	chunkURL, err := url.JoinPath(cfg.BaseURL, cfg.ChunkPath)
	if err != nil {
		return nil, fmt.Errorf("invalid chunk url: %w", err)
	}
	finalizeURL, err := url.JoinPath(cfg.BaseURL, cfg.FinalizePath)
	if err != nil {
		return nil, fmt.Errorf("invalid finalize url: %w", err)
	}
	if client == nil {
		client = &http.Client{}
	}

	return &HTTPAdapter{
		client:      client,
		chunkURL:    chunkURL,
		finalizeURL: finalizeURL,
	}, nil
}

// SendChunk posts one part as multipart/form-data.
func (a *HTTPAdapter) SendChunk(ctx context.Context, chunk port.ChunkUpload, onProgress port.ProgressFunc) error {
	body, contentType, err := encodeChunk(chunk)
	if err != nil {
		return err
	}

	payload := newCountingReader(bytes.NewReader(body), int64(len(body)), onProgress)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.chunkURL, payload)
	if err != nil {
		return fmt.Errorf("failed to build chunk request: %w", err)
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", contentType)

	if err := a.do(req, nil); err != nil {
		a.handleErr(err, "SendChunk")
		return err
	}
	return nil
}

// Finalize posts the assemble request and returns the public URL.
func (a *HTTPAdapter) Finalize(ctx context.Context, finalize port.FinalizeRequest) (string, error) {
	body, err := json.Marshal(finalize)
	if err != nil {
		return "", fmt.Errorf("failed to marshal finalize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.finalizeURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build finalize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out finalizeResponse
	if err := a.do(req, &out); err != nil {
		a.handleErr(err, "Finalize")
		return "", err
	}
	return out.PublicURL, nil
}

func (a *HTTPAdapter) do(req *http.Request, out any) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

type finalizeResponse struct {
	PublicURL string `json:"publicUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func encodeChunk(chunk port.ChunkUpload) ([]byte, string, error) {
	data, err := io.ReadAll(chunk.Payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read chunk payload: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	d := chunk.Descriptor
	fields := [][2]string{
		{"uploadId", d.UploadID},
		{"partNumber", strconv.Itoa(d.PartNumber)},
		{"totalParts", strconv.Itoa(d.TotalParts)},
		{"checksum", strconv.FormatUint(uint64(crc32.ChecksumIEEE(data)), 10)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("chunk", fmt.Sprintf("%s.part%d", d.UploadID, d.PartNumber))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// decodeResponse maps non-2xx answers to *StatusError and decodes 2xx JSON into out.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var body errorResponse
		if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
			body.Error = string(bytes.TrimSpace(raw))
		}
		return &StatusError{Code: resp.StatusCode, Message: body.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode receiver response: %w", err)
	}
	return nil
}

func (a *HTTPAdapter) handleErr(err error, op string) {
	if errors.Is(err, context.Canceled) {
		return
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		logger.Warnw("Receiver rejected call", "op", op, "status", statusErr.Code, "error", err.Error())
		return
	}
	logger.Warnw("Receiver call failed", "op", op, "error", err.Error())
}
