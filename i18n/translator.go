package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides values substituted for {placeholders} in the message
// (for example "type", "key" or "data").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"unknown_property":   `Key "{key}" is not a valid property of {type}`,
		"required":           `Can not create {type}: missing required property "{name}" in {data}`,
		"invalid_type":       "invalid type: expected {expected}",
		"duplicate_property": `duplicate property "{name}" in {type}`,
		"duplicate_model":    `model "{type}" is already registered`,
		"unknown_model":      `model "{type}" is not registered`,
		"duplicate_key":      "duplicate key",
		"parse_error":        "parse error",
		"truncated":          "truncated",
	},
	"ja": {
		"unknown_property":   `キー "{key}" は {type} の有効なプロパティではありません`,
		"required":           `{type} を作成できません: {data} に必須プロパティ "{name}" がありません`,
		"invalid_type":       "型が不正です: {expected} が必要です",
		"duplicate_property": `{type} のプロパティ "{name}" が重複しています`,
		"duplicate_model":    `モデル "{type}" は既に登録されています`,
		"unknown_model":      `モデル "{type}" は登録されていません`,
		"duplicate_key":      "キーが重複しています",
		"parse_error":        "解析エラー",
		"truncated":          "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
