package domain

import (
	"fmt"
	"strings"
)

// Language は物語を書く言語モードです。
type Language string

const (
	LanguageEnglish   Language = "English"
	LanguageSpanish   Language = "Spanish"
	LanguageBilingual Language = "Bilingual (English & Spanish)"
)

// Languages はサポートしている言語モードの一覧です。
var Languages = []Language{LanguageEnglish, LanguageSpanish, LanguageBilingual}

// ParseLanguage は入力文字列を Language に変換します。空文字は英語として扱います。
// "bilingual" や "es" のような短縮形も受け付けます。
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "english", "en":
		return LanguageEnglish, nil
	case "spanish", "es", "español", "espanol":
		return LanguageSpanish, nil
	case "bilingual", "bilingual (english & spanish)", "en-es":
		return LanguageBilingual, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// IsBilingual は英語とスペイン語の2ブロック構成が必要かどうかを返します。
func (l Language) IsBilingual() bool {
	return l == LanguageBilingual
}

const (
	defaultHeroGender = "child"
	defaultHeroName   = "Hero"
)

// Gender は主人公の種別の選択肢です。自由入力も許容します。
type Gender string

const (
	GenderBoy    Gender = "Boy"
	GenderGirl   Gender = "Girl"
	GenderRobot  Gender = "Robot"
	GenderAnimal Gender = "Animal"
)

// HeroTraits はユーザーが任意で指定する主人公の見た目の情報です。
// どれか1つでも設定されていればパーソナライズモードになります。
type HeroTraits struct {
	Name     string `json:"name,omitempty"`
	Gender   Gender `json:"gender,omitempty"`
	Hair     string `json:"hair,omitempty"`
	Eyes     string `json:"eyes,omitempty"`
	Clothing string `json:"clothing,omitempty"`
}

// HasPersonalization は主人公の情報が1つでも入力されているかを返します。
func (h *HeroTraits) HasPersonalization() bool {
	if h == nil {
		return false
	}
	for _, v := range []string{h.Name, string(h.Gender), h.Hair, h.Eyes, h.Clothing} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// VisualAnchor は全ページの挿絵プロンプトにそのまま埋め込む主人公の外見記述を返します。
func (h *HeroTraits) VisualAnchor() string {
	if !h.HasPersonalization() {
		return ""
	}
	gender := h.GenderOrDefault()
	hair := orDefault(h.Hair, "distinct")
	clothing := orDefault(h.Clothing, "distinct clothes")
	return fmt.Sprintf("A %s with %s hair and %s", gender, hair, clothing)
}

// DisplayName は本文中で使う主人公の名前を返します。
func (h *HeroTraits) DisplayName() string {
	if h == nil {
		return defaultHeroName
	}
	return orDefault(h.Name, defaultHeroName)
}

// GenderOrDefault は種別が未入力の場合に "child" を返します。
func (h *HeroTraits) GenderOrDefault() string {
	if h == nil {
		return defaultHeroGender
	}
	return orDefault(string(h.Gender), defaultHeroGender)
}

func orDefault(v, def string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return def
}
