package upload

// certs.go retrieves the client certificate, key and root CA bundle
// from the results service admin API. Each PEM is cached on the local
// filesystem: an existing file short-circuits the network call. The
// cache is opportunistic only; a stale or corrupt cached PEM is
// reused as-is.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the admin API the PEM artifacts come from.
const DefaultBaseURL = "https://cedar.mongodb.com/rest/v1"

const (
	caFileName   = "cedar.ca.pem"
	certFileName = "cedar.user.crt"
	keyFileName  = "cedar.user.key"
)

// CertRetriever fetches the PEM bundle needed to authenticate the
// upload, using service credentials.
type CertRetriever struct {
	username string
	password string
	baseURL  string
	cacheDir string
	client   *http.Client
}

// CertOption modifies a CertRetriever.
type CertOption func(*CertRetriever)

// WithBaseURL overrides the admin API base URL.
func WithBaseURL(baseURL string) CertOption {
	return func(r *CertRetriever) {
		r.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client, including its timeout.
func WithHTTPClient(client *http.Client) CertOption {
	return func(r *CertRetriever) {
		r.client = client
	}
}

// WithCacheDir sets the directory PEM files are cached in. Runs that
// share a working directory should key this per run to avoid racing
// on the cache.
func WithCacheDir(dir string) CertOption {
	return func(r *CertRetriever) {
		r.cacheDir = dir
	}
}

// NewCertRetriever creates a retriever for the given credentials.
func NewCertRetriever(username, password string, opts ...CertOption) *CertRetriever {
	r := &CertRetriever{
		username: username,
		password: password,
		baseURL:  DefaultBaseURL,
		cacheDir: ".",
		client:   &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RootCA returns the local path of the root certificate authority PEM.
func (r *CertRetriever) RootCA() (string, error) {
	return r.fetch(http.MethodGet, "/admin/ca", caFileName)
}

// UserCert returns the local path of the user certificate PEM.
func (r *CertRetriever) UserCert() (string, error) {
	return r.fetch(http.MethodPost, "/admin/users/certificate", certFileName)
}

// UserKey returns the local path of the user key PEM.
func (r *CertRetriever) UserKey() (string, error) {
	return r.fetch(http.MethodPost, "/admin/users/certificate/key", keyFileName)
}

// fetch downloads one PEM unless a cached copy already exists. POST
// requests carry the credentials as a JSON body.
func (r *CertRetriever) fetch(method, endpoint, fileName string) (string, error) {
	output := filepath.Join(r.cacheDir, fileName)
	if _, err := os.Stat(output); err == nil {
		return output, nil
	}

	var body io.Reader
	if method == http.MethodPost {
		auth, err := json.Marshal(map[string]string{
			"username": r.username,
			"password": r.password,
		})
		if err != nil {
			return "", fmt.Errorf("failed to encode credentials: %w", err)
		}
		body = bytes.NewReader(auth)
	}

	url := r.baseURL + endpoint
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	pem, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", url, err)
	}

	if err := os.WriteFile(output, pem, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", output, err)
	}

	return output, nil
}
