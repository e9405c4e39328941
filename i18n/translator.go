package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "min" or "format").
type Translator interface {
	Message(code string, data map[string]string) string
}

// CodeValidationFailed is the message key used when a validator fails without
// reporting any message.
const CodeValidationFailed = "validation_failed"

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":           "Required",
		"invalid_type":       "Expected {expected}, received {received}",
		"too_short":          "String must contain at least {min} character(s)",
		"too_long":           "String must contain at most {max} character(s)",
		"invalid_format":     "Invalid {format}",
		"invalid_date":       "Please enter a valid date",
		"invalid_enum":       "Invalid enum value. Expected {expected}, received '{received}'",
		"invalid_number":     "Please enter a valid number",
		CodeValidationFailed: "Validation failed",
	},
	"ja": {
		"required":           "必須項目です",
		"invalid_type":       "型が不正です ({expected} が必要です)",
		"too_short":          "{min} 文字以上で入力してください",
		"too_long":           "{max} 文字以内で入力してください",
		"invalid_format":     "{format} の形式が不正です",
		"invalid_date":       "有効な日付を入力してください",
		"invalid_enum":       "{expected} のいずれかを選択してください",
		"invalid_number":     "有効な数値を入力してください",
		CodeValidationFailed: "検証に失敗しました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
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
