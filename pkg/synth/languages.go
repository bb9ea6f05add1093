package synth

// languageTable is the fixed built-in locale table. It is derived from
// the locales the UI layer offers, not from the voice file, so locales
// without bundled voices still appear in the catalog.
var languageTable = []LanguageDescriptor{
	{Code: "ar-SA", Name: "Arabic (Saudi Arabia)", Flag: "sa"},
	{Code: "de-DE", Name: "German (Germany)", Flag: "de"},
	{Code: "en-GB", Name: "English (United Kingdom)", Flag: "gb"},
	{Code: "en-US", Name: "English (United States)", Flag: "us"},
	{Code: "es-ES", Name: "Spanish (Spain)", Flag: "es"},
	{Code: "es-MX", Name: "Spanish (Mexico)", Flag: "mx"},
	{Code: "fr-CA", Name: "French (Canada)", Flag: "ca"},
	{Code: "fr-FR", Name: "French (France)", Flag: "fr"},
	{Code: "hi-IN", Name: "Hindi (India)", Flag: "in"},
	{Code: "id-ID", Name: "Indonesian (Indonesia)", Flag: "id"},
	{Code: "it-IT", Name: "Italian (Italy)", Flag: "it"},
	{Code: "ja-JP", Name: "Japanese (Japan)", Flag: "jp"},
	{Code: "ko-KR", Name: "Korean (Korea)", Flag: "kr"},
	{Code: "nl-NL", Name: "Dutch (Netherlands)", Flag: "nl"},
	{Code: "pl-PL", Name: "Polish (Poland)", Flag: "pl"},
	{Code: "pt-BR", Name: "Portuguese (Brazil)", Flag: "br"},
	{Code: "ru-RU", Name: "Russian (Russia)", Flag: "ru"},
	{Code: "th-TH", Name: "Thai (Thailand)", Flag: "th"},
	{Code: "tr-TR", Name: "Turkish (Türkiye)", Flag: "tr"},
	{Code: "uk-UA", Name: "Ukrainian (Ukraine)", Flag: "ua"},
	{Code: "vi-VN", Name: "Vietnamese (Vietnam)", Flag: "vn"},
	{Code: "zh-CN", Name: "Chinese (Mainland)", Flag: "cn"},
	{Code: "zh-TW", Name: "Chinese (Taiwan)", Flag: "tw"},
	{Code: "zu-ZA", Name: "Zulu (South Africa)", Flag: "za"},
}

var localeSet = func() map[string]bool {
	set := make(map[string]bool, len(languageTable))
	for _, l := range languageTable {
		set[l.Code] = true
	}
	return set
}()

// Languages returns the full built-in locale table. Callers must not
// modify the returned slice.
func Languages() []LanguageDescriptor {
	return languageTable
}

// knownLocale reports whether code is registered in the locale table.
func knownLocale(code string) bool {
	return localeSet[code]
}
