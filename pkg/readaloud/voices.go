package readaloud

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// VoiceTag carries descriptive tags the service attaches to a voice.
type VoiceTag struct {
	ContentCategories  []string `json:"ContentCategories"`
	VoicePersonalities []string `json:"VoicePersonalities"`
}

// Voice is one entry of the live voice list.
type Voice struct {
	Name           string   `json:"Name"`
	ShortName      string   `json:"ShortName"`
	Gender         string   `json:"Gender"`
	Locale         string   `json:"Locale"`
	SuggestedCodec string   `json:"SuggestedCodec"`
	FriendlyName   string   `json:"FriendlyName"`
	Status         string   `json:"Status"`
	VoiceTag       VoiceTag `json:"VoiceTag"`
}

// ListVoices fetches the live voice list from the service. The bundled
// catalog in pkg/synth is the source of truth for the application; this
// call exists for refreshing that catalog and for diagnostics.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	url := c.config.voiceListURL +
		"?trustedclienttoken=" + c.config.trustedToken +
		"&Sec-MS-GEC=" + sessionProof(c.config.trustedToken, time.Now()) +
		"&Sec-MS-GEC-Version=1-" + chromiumVersion

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(KindVoiceList, "create voice list request", err)
	}
	req.Header.Set("User-Agent", c.config.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.config.httpClient.Do(req)
	if err != nil {
		return nil, newError(KindVoiceList, "fetch voice list", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &Error{
			Kind:    KindVoiceList,
			Message: "voice list returned " + resp.Status + ": " + string(body),
		}
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, newError(KindVoiceList, "decode voice list", err)
	}
	return voices, nil
}
