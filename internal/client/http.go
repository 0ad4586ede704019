package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/proxy"
)

type BrowserImpersonation string

const (
	BrowserNone    BrowserImpersonation = "none"
	BrowserChrome  BrowserImpersonation = "chrome"
	BrowserSafari  BrowserImpersonation = "safari"
	BrowserEdge    BrowserImpersonation = "edge"
	BrowserFirefox BrowserImpersonation = "firefox"
)

var UserAgents = map[string]string{
	"none":    "mcavail",
	"chrome":  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"firefox": "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"safari":  "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"edge":    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
}

// maxBodyBytes bounds how much of a lookup response is read into memory.
const maxBodyBytes = 1 << 20

type ProxyRotator struct {
	proxies []string
	current int
	mu      sync.Mutex
}

func NewProxyRotator(proxies []string) *ProxyRotator {
	return &ProxyRotator{
		proxies: proxies,
		current: 0,
	}
}

func LoadProxiesFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open proxies file: %w", err)
	}
	defer file.Close()

	var proxies []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read proxies file: %w", err)
	}

	if len(proxies) == 0 {
		return nil, fmt.Errorf("no valid proxies found in file")
	}

	return proxies, nil
}

func (pr *ProxyRotator) Next() string {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if len(pr.proxies) == 0 {
		return ""
	}

	proxy := pr.proxies[pr.current]
	pr.current = (pr.current + 1) % len(pr.proxies)
	return proxy
}

func (pr *ProxyRotator) Len() int {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return len(pr.proxies)
}

// HTTPClient is the connection context shared by every lookup of a run.
// The underlying transport keeps connections alive between requests.
type HTTPClient struct {
	client       *http.Client
	userAgent    string
	proxyRotator *ProxyRotator
	currentProxy string
	timeout      time.Duration
}

type ClientConfig struct {
	Timeout     int
	Impersonate BrowserImpersonation
	Proxy       string
	ProxyFile   string
}

func NewHTTPClient(config ClientConfig) (*HTTPClient, error) {
	timeout := time.Duration(config.Timeout) * time.Second

	userAgent := UserAgents[string(config.Impersonate)]
	if userAgent == "" {
		userAgent = UserAgents["chrome"]
	}

	client := &HTTPClient{
		userAgent: userAgent,
		timeout:   timeout,
	}

	proxyURL := config.Proxy
	if config.ProxyFile != "" {
		proxies, err := LoadProxiesFromFile(config.ProxyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load proxies: %w", err)
		}
		client.proxyRotator = NewProxyRotator(proxies)
		proxyURL = client.proxyRotator.Next()
	}

	transport, err := createTransport(proxyURL)
	if err != nil {
		return nil, err
	}
	client.currentProxy = proxyURL

	client.client = &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}

	return client, nil
}

func createTransport(proxyStr string) (*http.Transport, error) {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.MaxIdleConnsPerHost = 2

	if proxyStr == "" {
		base.Proxy = nil
		return base, nil
	}

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}

	if proxyURL.Scheme == "socks5" {
		var auth *proxy.Auth
		if proxyURL.User != nil {
			password, _ := proxyURL.User.Password()
			auth = &proxy.Auth{User: proxyURL.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}

		base.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			base.DialContext = cd.DialContext
		} else {
			base.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
		return base, nil
	}

	base.Proxy = http.ProxyURL(proxyURL)
	return base, nil
}

// RotateProxy switches to the next proxy from the proxy file. It is a no-op
// when no proxy file was configured or it holds a single entry.
func (c *HTTPClient) RotateProxy() error {
	if c.proxyRotator == nil || c.proxyRotator.Len() < 2 {
		return nil
	}

	proxyURL := c.proxyRotator.Next()
	transport, err := createTransport(proxyURL)
	if err != nil {
		return err
	}

	if old, ok := c.client.Transport.(*http.Transport); ok {
		old.CloseIdleConnections()
	}
	c.client.Transport = transport
	c.currentProxy = proxyURL
	return nil
}

func (c *HTTPClient) CurrentProxy() string {
	return c.currentProxy
}

func (c *HTTPClient) Timeout() time.Duration {
	return c.timeout
}

func (c *HTTPClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.client.Do(req)
}

// CloseIdleConnections releases the keep-alive pool at the end of a run.
func (c *HTTPClient) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

// ReadResponseBody drains and closes the body so the connection can be reused.
func ReadResponseBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return string(body), nil
}
