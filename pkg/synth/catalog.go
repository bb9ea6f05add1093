package synth

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed voices.json
var bundledVoices []byte

// voiceRecord mirrors one entry of the bundled voice data file.
type voiceRecord struct {
	Name               string   `json:"Name"`
	Gender             string   `json:"Gender"`
	ContentCategories  []string `json:"ContentCategories"`
	VoicePersonalities []string `json:"VoicePersonalities"`
	EnglishName        string   `json:"EnglishName"`
	ChineseName        string   `json:"ChineseName"`
	Role               string   `json:"Role"`
	Language           string   `json:"Language"`
	Region             string   `json:"Region"`
}

// Catalog loads the bundled voice table once and projects it into
// generic descriptors. The table is read-only after load and safe for
// unsynchronized concurrent reads.
type Catalog struct {
	data []byte

	once   sync.Once
	err    error
	voices []VoiceDescriptor
	byID   map[string]VoiceDescriptor
}

// NewCatalog creates a catalog backed by the bundled voice data file.
func NewCatalog() *Catalog {
	return &Catalog{data: bundledVoices}
}

// NewCatalogFromData creates a catalog backed by the given JSON data.
func NewCatalogFromData(data []byte) *Catalog {
	return &Catalog{data: data}
}

// Initialize loads the voice table. It is idempotent: the first call
// decides the outcome and later calls return the same result. On
// failure the table stays empty; it is never partially populated.
func (c *Catalog) Initialize() error {
	c.once.Do(func() {
		c.voices, c.byID, c.err = loadVoices(c.data)
	})
	return c.err
}

// Voices returns the ordered voice descriptors. Callers must not modify
// the returned slice.
func (c *Catalog) Voices() ([]VoiceDescriptor, error) {
	if err := c.Initialize(); err != nil {
		return nil, err
	}
	return c.voices, nil
}

// Voice looks up a descriptor by voice id.
func (c *Catalog) Voice(id string) (VoiceDescriptor, bool) {
	if err := c.Initialize(); err != nil {
		return VoiceDescriptor{}, false
	}
	v, ok := c.byID[id]
	return v, ok
}

// loadVoices parses and projects the raw records. Any malformed record
// fails the whole load.
func loadVoices(data []byte) ([]VoiceDescriptor, map[string]VoiceDescriptor, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty voice data", ErrCatalogLoad)
	}

	var records []voiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: no voice records", ErrCatalogLoad)
	}

	voices := make([]VoiceDescriptor, 0, len(records))
	byID := make(map[string]VoiceDescriptor, len(records))
	for i, rec := range records {
		v, err := mapVoice(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: record %d: %v", ErrCatalogLoad, i, err)
		}
		if _, exists := byID[v.ID]; exists {
			return nil, nil, fmt.Errorf("%w: duplicate voice id %q", ErrCatalogLoad, v.ID)
		}
		if !knownLocale(v.LanguageRegion) {
			return nil, nil, fmt.Errorf("%w: voice %q has unregistered locale %q",
				ErrCatalogLoad, v.ID, v.LanguageRegion)
		}
		voices = append(voices, v)
		byID[v.ID] = v
	}
	return voices, byID, nil
}

// mapVoice is the generic projection from a raw record to a descriptor:
// Role becomes the display name, Language and Region join into the
// language-region pair, and the backend voice name passes through as id.
func mapVoice(rec voiceRecord) (VoiceDescriptor, error) {
	if rec.Name == "" {
		return VoiceDescriptor{}, fmt.Errorf("missing Name")
	}
	if rec.Language == "" || rec.Region == "" {
		return VoiceDescriptor{}, fmt.Errorf("voice %q: missing Language/Region", rec.Name)
	}

	v := VoiceDescriptor{
		ID:             rec.Name,
		DisplayName:    rec.Role,
		Gender:         rec.Gender,
		LanguageRegion: rec.Language + "-" + rec.Region,
	}
	if len(rec.ContentCategories) > 0 {
		v.Category = rec.ContentCategories[0]
	}
	return v, nil
}
