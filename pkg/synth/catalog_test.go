package synth

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCatalogMappingRule(t *testing.T) {
	catalog := NewCatalog()
	voices, err := catalog.Voices()
	if err != nil {
		t.Fatalf("Voices: %v", err)
	}
	if len(voices) == 0 {
		t.Fatal("bundled catalog is empty")
	}

	// Cross-check the projection against the raw records: the
	// language-region pair is always Language + "-" + Region, verbatim.
	var records []voiceRecord
	if err := json.Unmarshal(bundledVoices, &records); err != nil {
		t.Fatalf("unmarshal bundled data: %v", err)
	}
	if len(records) != len(voices) {
		t.Fatalf("got %d descriptors for %d records", len(voices), len(records))
	}
	for i, rec := range records {
		v := voices[i]
		if v.ID != rec.Name {
			t.Errorf("record %d: ID = %q, want %q", i, v.ID, rec.Name)
		}
		if v.DisplayName != rec.Role {
			t.Errorf("record %d: DisplayName = %q, want %q", i, v.DisplayName, rec.Role)
		}
		if v.Gender != rec.Gender {
			t.Errorf("record %d: Gender = %q, want %q", i, v.Gender, rec.Gender)
		}
		if want := rec.Language + "-" + rec.Region; v.LanguageRegion != want {
			t.Errorf("record %d: LanguageRegion = %q, want %q", i, v.LanguageRegion, want)
		}
	}
}

func TestCatalogThembaProjection(t *testing.T) {
	catalog := NewCatalog()
	v, ok := catalog.Voice("zu-ZA-ThembaNeural")
	if !ok {
		t.Fatal("zu-ZA-ThembaNeural not in catalog")
	}

	want := VoiceDescriptor{
		ID:             "zu-ZA-ThembaNeural",
		DisplayName:    "Themba",
		Gender:         "Male",
		LanguageRegion: "zu-ZA",
		Category:       "General",
	}
	if v != want {
		t.Errorf("descriptor = %+v, want %+v", v, want)
	}
}

func TestCatalogInitializeIdempotent(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	first, _ := catalog.Voices()
	if err := catalog.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	second, _ := catalog.Voices()
	if &first[0] != &second[0] {
		t.Error("second Initialize rebuilt the table")
	}
}

func TestCatalogMalformedData(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":        nil,
		"not json":     []byte("voices: nope"),
		"empty array":  []byte("[]"),
		"missing name": []byte(`[{"Gender":"Male","Language":"en","Region":"US"}]`),
		"missing region": []byte(
			`[{"Name":"en-US-AriaNeural","Role":"Aria","Language":"en"}]`),
		"duplicate id": []byte(
			`[{"Name":"en-US-AriaNeural","Role":"Aria","Language":"en","Region":"US"},
			  {"Name":"en-US-AriaNeural","Role":"Aria","Language":"en","Region":"US"}]`),
		"unregistered locale": []byte(
			`[{"Name":"xx-XX-NobodyNeural","Role":"Nobody","Language":"xx","Region":"XX"}]`),
	} {
		t.Run(name, func(t *testing.T) {
			catalog := NewCatalogFromData(data)
			err := catalog.Initialize()
			if !errors.Is(err, ErrCatalogLoad) {
				t.Fatalf("err = %v, want ErrCatalogLoad", err)
			}
			if voices, _ := catalog.Voices(); voices != nil {
				t.Error("failed load left a partially populated table")
			}
		})
	}
}

func TestLanguagesTable(t *testing.T) {
	langs := Languages()
	seen := make(map[string]bool, len(langs))
	for _, l := range langs {
		if seen[l.Code] {
			t.Errorf("duplicate locale %q", l.Code)
		}
		seen[l.Code] = true
		if l.Name == "" {
			t.Errorf("locale %q has no name", l.Code)
		}
	}

	// Locales without bundled voices still appear in the table.
	for _, code := range []string{"fr-CA", "hi-IN", "uk-UA"} {
		if !seen[code] {
			t.Errorf("voice-less locale %q missing from table", code)
		}
	}
}

func TestEveryVoiceLocaleRegistered(t *testing.T) {
	catalog := NewCatalog()
	voices, err := catalog.Voices()
	if err != nil {
		t.Fatalf("Voices: %v", err)
	}
	for _, v := range voices {
		if !knownLocale(v.LanguageRegion) {
			t.Errorf("voice %q: locale %q not in language table", v.ID, v.LanguageRegion)
		}
	}
}
