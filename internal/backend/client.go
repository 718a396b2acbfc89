// Package backend talks to the chat backend over HTTP.
//
// A submission is a single multipart POST carrying the prompt, the session's
// user id and an optional file. The backend answers with the full message
// history for that user as a JSON array; the reply to this submission is the
// last element.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/cazelabs/cazechat/internal/composer"
	"github.com/cazelabs/cazechat/internal/errors"
	"github.com/cazelabs/cazechat/internal/logger"
)

const (
	// DefaultEndpoint is the chat endpoint of a locally running backend.
	DefaultEndpoint = "http://localhost:8000/chat/"

	// maxErrorBody caps how much of a failed response is kept for the error.
	maxErrorBody = 512
)

// Form field names of the /chat/ contract.
const (
	FieldPrompt = "prompt"
	FieldUserID = "user_id"
	FieldFile   = "file"
)

// Request is one submission.
type Request struct {
	Prompt     string
	UserID     string
	Attachment *composer.Attachment
}

// Sender sends a submission and returns the backend's reply.
type Sender interface {
	Send(ctx context.Context, req Request) (Reply, error)
}

// Client is the HTTP implementation of Sender.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a client for endpoint. A zero timeout means requests wait
// until the backend answers or ctx is cancelled.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return NewClientWithHTTP(endpoint, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(endpoint string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, endpoint: endpoint}
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts req and returns the last message of the returned history.
// Every failure is a "submission failed" error: KindNetwork when the request
// never got a response, KindServer for bad statuses and unreadable bodies.
func (c *Client) Send(ctx context.Context, req Request) (Reply, error) {
	log := logger.WithComponent("backend")

	body, contentType, err := encodeForm(req)
	if err != nil {
		return Reply{}, errors.SubmissionFailed(errors.KindInvalid, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Reply{}, errors.SubmissionFailed(errors.KindInvalid, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	log.Info("submitting", "endpoint", c.endpoint, "prompt_len", len(req.Prompt), "has_file", req.Attachment != nil)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("request failed", "error", err, "elapsed", time.Since(start))
		return Reply{}, errors.SubmissionFailed(errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("unexpected status", "status", resp.StatusCode, "elapsed", time.Since(start))
		return Reply{}, errors.SubmissionFailed(errors.KindServer,
			errors.UnexpectedStatus(resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	reply, err := decodeHistory(resp.Body)
	if err != nil {
		log.Warn("undecodable response", "error", err)
		return Reply{}, errors.SubmissionFailed(errors.KindServer, err)
	}

	log.Info("reply received", "id", reply.ID, "has_file", reply.FileURL != "", "elapsed", time.Since(start))
	return reply, nil
}

// encodeForm builds the multipart body. The prompt and user id are always
// sent; the file part only when there is an attachment.
func encodeForm(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(FieldPrompt, req.Prompt); err != nil {
		return nil, "", err
	}
	if err := w.WriteField(FieldUserID, req.UserID); err != nil {
		return nil, "", err
	}

	if a := req.Attachment; a != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FieldFile, a.Name))
		mimeType := a.MIMEType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		h.Set("Content-Type", mimeType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(a.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// decodeHistory decodes the returned history and keeps only its last entry.
func decodeHistory(r io.Reader) (Reply, error) {
	var history []wireMessage
	if err := json.NewDecoder(r).Decode(&history); err != nil {
		return Reply{}, errors.E(errors.Op("backend.decode"), errors.KindDecode, "malformed response", err)
	}
	if len(history) == 0 {
		return Reply{}, errors.E(errors.Op("backend.decode"), errors.KindDecode, "empty response")
	}
	return history[len(history)-1].reply(), nil
}
