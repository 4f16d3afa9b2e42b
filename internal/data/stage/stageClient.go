package stage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/customHttpClient"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

// ObjectStage is the slice of the data platform that stores raw bytes.
// Put may rewrite the final key segment - callers must treat the returned
// key as authoritative.
type ObjectStage interface {
	Put(ctx context.Context, localPath string, stageRef string, relativeKey string) (string, error)
	Presign(ctx context.Context, stageRef string, relativeKey string, ttl time.Duration) (string, error)
	Fetch(ctx context.Context, presignedURL string) (*http.Response, error)
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
	fetcher *http.Client
	logger  *logger_i.Logger
}

func NewClient(baseURL string, token string) *Client {
	if baseURL == "" {
		baseURL = envOr("STAGE_GATEWAY_URL", config.StageGatewayURL)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  customHttpClient.NewPooledClient(config.StageCallTimeout),
		// presigned fetches stream large files, no client deadline
		fetcher: customHttpClient.NewPooledClient(0),
		logger:  logger_i.NewLogger("StageGateway"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type putResponse struct {
	Key string `json:"key"`
}

type presignResponse struct {
	URL string `json:"url"`
}

// Put uploads the file at localPath under relativeKey. The gateway decides
// the final key (it may rename the leaf) and that key is returned.
func (c *Client) Put(ctx context.Context, localPath string, stageRef string, relativeKey string) (string, error) {
	log := c.logger.WithTrace(ctx)

	body, contentType, err := buildMultipart(localPath, relativeKey)
	if err != nil {
		return "", faults.Upstreamf("stage upload", err)
	}

	endpoint := fmt.Sprintf("%s/stages/%s/objects", c.baseURL, url.PathEscape(stageRef))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", faults.Upstreamf("stage upload", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", faults.Upstreamf("stage upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("Stage rejected upload", "status", resp.StatusCode, "key", relativeKey)
		return "", faults.Upstreamf("stage upload", fmt.Errorf("gateway returned %d", resp.StatusCode))
	}

	var out putResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", faults.Upstreamf("stage upload", err)
	}
	if out.Key == "" {
		// gateway did not echo a key, assume it kept ours
		out.Key = relativeKey
	}
	log.Debug("Uploaded object", "requestedKey", relativeKey, "assignedKey", out.Key)
	return out.Key, nil
}

// Presign asks for a time-limited download URL for one candidate key.
func (c *Client) Presign(ctx context.Context, stageRef string, relativeKey string, ttl time.Duration) (string, error) {
	endpoint := fmt.Sprintf("%s/stages/%s/presign?key=%s&ttl=%s",
		c.baseURL, url.PathEscape(stageRef), url.QueryEscape(relativeKey),
		strconv.Itoa(int(ttl.Seconds())))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", faults.Upstreamf("presign", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", faults.Upstreamf("presign", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", faults.Upstreamf("presign", fmt.Errorf("gateway returned %d for %s", resp.StatusCode, relativeKey))
	}

	var out presignResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", faults.Upstreamf("presign", err)
	}
	if out.URL == "" {
		return "", faults.Upstreamf("presign", fmt.Errorf("gateway returned empty url for %s", relativeKey))
	}
	return out.URL, nil
}

// Fetch follows a presigned URL. The caller owns the response body and must
// close it; non-2xx statuses are returned as errors with the body drained.
func (c *Client) Fetch(ctx context.Context, presignedURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, presignedURL, nil)
	if err != nil {
		return nil, faults.Upstreamf("object fetch", err)
	}

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, faults.Upstreamf("object fetch", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, faults.Upstreamf("object fetch", fmt.Errorf("fetch returned %d", resp.StatusCode))
	}
	return resp, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func buildMultipart(localPath string, relativeKey string) (io.Reader, string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	//uploads are capped at the handler, buffering here is fine
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("key", relativeKey); err != nil {
		return nil, "", err
	}
	part, err := writer.CreateFormFile("object", filepath.Base(relativeKey))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}
