package readaloud

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultHost         = "speech.platform.bing.com"
	defaultBasePath     = "/consumer/speech/synthesize/readaloud"
	defaultEndpoint     = "wss://" + defaultHost + defaultBasePath + "/edge/v1"
	defaultVoiceListURL = "https://" + defaultHost + defaultBasePath + "/voices/list"

	// defaultTrustedToken is the public trusted-client token the Edge
	// browser ships with.
	defaultTrustedToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	// defaultOutputFormat is the audio codec/bitrate requested in
	// speech.config.
	defaultOutputFormat = "audio-24khz-48kbitrate-mono-mp3"

	chromiumVersion = "130.0.2849.68"

	defaultTimeout = 30 * time.Second
)

var defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36 Edg/130.0.0.0"

// Client is a readaloud synthesis client. It is safe for concurrent use;
// every synthesis call opens its own connection and session.
type Client struct {
	config   *clientConfig
	deviceID string
}

// clientConfig holds client configuration.
type clientConfig struct {
	endpoint     string
	voiceListURL string
	trustedToken string
	userAgent    string
	outputFormat string
	dialer       *websocket.Dialer
	httpClient   *http.Client
	timeout      time.Duration
}

// Option configures a Client.
type Option func(*clientConfig)

// NewClient creates a readaloud client.
func NewClient(opts ...Option) *Client {
	config := &clientConfig{
		endpoint:     defaultEndpoint,
		voiceListURL: defaultVoiceListURL,
		trustedToken: defaultTrustedToken,
		userAgent:    defaultUserAgent,
		outputFormat: defaultOutputFormat,
		timeout:      defaultTimeout,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.dialer == nil {
		config.dialer = &websocket.Dialer{
			HandshakeTimeout: config.timeout,
		}
	}
	if config.httpClient == nil {
		config.httpClient = &http.Client{
			Timeout: config.timeout,
		}
	}

	return &Client{
		config:   config,
		deviceID: deviceID(),
	}
}

// WithEndpoint sets the WebSocket endpoint URL.
//
// Default: wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1
func WithEndpoint(url string) Option {
	return func(c *clientConfig) {
		c.endpoint = url
	}
}

// WithVoiceListURL sets the live voice-list URL.
func WithVoiceListURL(url string) Option {
	return func(c *clientConfig) {
		c.voiceListURL = url
	}
}

// WithTrustedToken sets the trusted-client token used in the connection
// query string and the session proof.
func WithTrustedToken(token string) Option {
	return func(c *clientConfig) {
		c.trustedToken = token
	}
}

// WithUserAgent sets the handshake User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithOutputFormat sets the audio codec/bitrate requested in
// speech.config.
//
// Default: audio-24khz-48kbitrate-mono-mp3
func WithOutputFormat(format string) Option {
	return func(c *clientConfig) {
		c.outputFormat = format
	}
}

// WithDialer sets a custom WebSocket dialer.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(c *clientConfig) {
		c.dialer = dialer
	}
}

// WithHTTPClient sets a custom HTTP client for the voice-list endpoint.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the handshake and HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// connectURL builds the per-connection endpoint URL: trusted token,
// rotating session proof, proof version and a fresh connection id.
func (c *Client) connectURL(now time.Time) string {
	return c.config.endpoint +
		"?TrustedClientToken=" + c.config.trustedToken +
		"&Sec-MS-GEC=" + sessionProof(c.config.trustedToken, now) +
		"&Sec-MS-GEC-Version=1-" + chromiumVersion +
		"&ConnectionId=" + connectionID()
}

// handshakeHeaders builds the WebSocket handshake headers, including the
// device-id cookie.
func (c *Client) handshakeHeaders() http.Header {
	h := http.Header{}
	h.Set("Pragma", "no-cache")
	h.Set("Cache-Control", "no-cache")
	h.Set("Origin", "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("User-Agent", c.config.userAgent)
	h.Set("Cookie", "MUID="+c.deviceID)
	return h
}
