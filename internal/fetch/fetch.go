package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"mcplab/internal/logging"

	"github.com/Azure/go-ntlmssp"
	"github.com/jcmturner/gokrb5/v8/client"
	krb5config "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/spnego"
)

// Authentication method names accepted by the fetch tool.
const (
	MethodAuto      = "auto"
	MethodNegotiate = "negotiate"
	MethodKerberos  = "kerberos"
	MethodNTLM      = "ntlm"
)

// maxBodyChars caps the amount of response body included in results.
const maxBodyChars = 5000

// Options configures a Fetcher. Zero values fall back to the
// environment: KRB5_CONFIG and KRB5CCNAME for Kerberos, USERNAME and
// USERDOMAIN for NTLM.
type Options struct {
	Client       *http.Client
	Krb5ConfPath string
	CCachePath   string
	Username     string
	Domain       string
}

// Fetcher retrieves URLs, falling back to negotiated HTTP authentication
// on 401 responses. The handshakes themselves are delegated entirely to
// the gokrb5 (SPNEGO/Kerberos) and go-ntlmssp (NTLM) libraries.
type Fetcher struct {
	client       *http.Client
	krb5ConfPath string
	ccachePath   string
	username     string
	domain       string
}

func NewFetcher(opts Options) *Fetcher {
	f := &Fetcher{
		client:       opts.Client,
		krb5ConfPath: opts.Krb5ConfPath,
		ccachePath:   opts.CCachePath,
		username:     opts.Username,
		domain:       opts.Domain,
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: 10 * time.Second}
	}
	if f.krb5ConfPath == "" {
		f.krb5ConfPath = envOrDefault("KRB5_CONFIG", "/etc/krb5.conf")
	}
	if f.ccachePath == "" {
		f.ccachePath = strings.TrimPrefix(os.Getenv("KRB5CCNAME"), "FILE:")
	}
	if f.username == "" {
		f.username = envOrDefault("USERNAME", os.Getenv("USER"))
	}
	if f.domain == "" {
		f.domain = os.Getenv("USERDOMAIN")
	}
	return f
}

// Available lists the authentication methods whose prerequisites are
// present, mirroring the original's conditional feature detection.
func (f *Fetcher) Available() []string {
	var methods []string
	if f.kerberosAvailable() {
		methods = append(methods, MethodNegotiate, MethodKerberos)
	}
	if f.ntlmAvailable() {
		methods = append(methods, MethodNTLM)
	}
	return methods
}

func (f *Fetcher) kerberosAvailable() bool {
	if f.ccachePath == "" {
		return false
	}
	if _, err := os.Stat(f.ccachePath); err != nil {
		return false
	}
	_, err := os.Stat(f.krb5ConfPath)
	return err == nil
}

func (f *Fetcher) ntlmAvailable() bool {
	return f.username != "" && f.domain != ""
}

// Fetch retrieves url, first without authentication and then, on a 401,
// with each applicable authentication method in turn. The returned
// string is a human-readable report either way; an error is returned
// only for an unusable method name.
func (f *Fetcher) Fetch(ctx context.Context, url, method string) (string, error) {
	switch method {
	case MethodAuto, MethodNegotiate, MethodKerberos, MethodNTLM:
	default:
		return "", fmt.Errorf("unknown auth method %q", method)
	}

	logging.Info("Fetching %s with auth method: %s", url, method)

	// Try without auth first.
	status, body, err := f.do(ctx, f.client, url)
	if err == nil {
		if status < 400 {
			return fmt.Sprintf("Success (no auth needed)\nStatus: %d\n\nContent:\n%s", status, truncate(body)), nil
		}
		if status != http.StatusUnauthorized {
			return fmt.Sprintf("Error: HTTP %d %s", status, http.StatusText(status)), nil
		}
		logging.Info("Got 401, trying with authentication...")
	} else {
		logging.Error("Error without auth: %v", err)
	}

	attempts := f.attempts(method)
	if len(attempts) == 0 {
		return fmt.Sprintf("Error: No authentication methods available. Available: %v", f.Available()), nil
	}

	var errors []string
	for _, attempt := range attempts {
		logging.Info("Trying %s authentication...", attempt.name)

		status, body, err := attempt.run(ctx, url)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", attempt.name, err)
			logging.Error(msg)
			errors = append(errors, msg)
			continue
		}
		if status >= 400 {
			msg := fmt.Sprintf("%s: HTTP %d %s", attempt.name, status, http.StatusText(status))
			logging.Error(msg)
			errors = append(errors, msg)
			continue
		}
		return fmt.Sprintf("Success with %s\nStatus: %d\n\nContent:\n%s", attempt.name, status, truncate(body)), nil
	}

	return fmt.Sprintf("Authentication failed for %s\n\nErrors:\n%s", url, strings.Join(errors, "\n")), nil
}

type attempt struct {
	name string
	run  func(ctx context.Context, url string) (int, string, error)
}

func (f *Fetcher) attempts(method string) []attempt {
	var attempts []attempt

	wantsKerberos := method == MethodAuto || method == MethodNegotiate || method == MethodKerberos
	if wantsKerberos && f.kerberosAvailable() {
		attempts = append(attempts, attempt{name: MethodNegotiate, run: f.doSPNEGO})
	}
	if (method == MethodAuto || method == MethodNTLM) && f.ntlmAvailable() {
		attempts = append(attempts, attempt{name: MethodNTLM, run: f.doNTLM})
	}
	return attempts
}

func (f *Fetcher) do(ctx context.Context, httpClient *http.Client, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

// doSPNEGO authenticates with a Kerberos ticket from the credential
// cache, wrapped in SPNEGO by gokrb5.
func (f *Fetcher) doSPNEGO(ctx context.Context, url string) (int, string, error) {
	cfg, err := krb5config.Load(f.krb5ConfPath)
	if err != nil {
		return 0, "", fmt.Errorf("load krb5 config: %w", err)
	}
	ccache, err := credentials.LoadCCache(f.ccachePath)
	if err != nil {
		return 0, "", fmt.Errorf("load credential cache: %w", err)
	}
	krbClient, err := client.NewFromCCache(ccache, cfg, client.DisablePAFXFAST(true))
	if err != nil {
		return 0, "", fmt.Errorf("create kerberos client: %w", err)
	}
	defer krbClient.Destroy()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}

	spnegoClient := spnego.NewClient(krbClient, f.client, "")
	resp, err := spnegoClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

// doNTLM authenticates with the current DOMAIN\user identity via the
// go-ntlmssp negotiator, matching the original's passwordless NTLM use.
func (f *Fetcher) doNTLM(ctx context.Context, url string) (int, string, error) {
	transport := f.client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	ntlmClient := &http.Client{
		Transport: ntlmssp.Negotiator{RoundTripper: transport},
		Timeout:   30 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	req.SetBasicAuth(f.domain+`\`+f.username, "")

	resp, err := ntlmClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

func truncate(body string) string {
	if len(body) <= maxBodyChars {
		return body
	}
	return body[:maxBodyChars] + fmt.Sprintf("\n\n[Content truncated to %d characters]", maxBodyChars)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
