package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data provides optional details to embed in the message (for example,
// "char" or "expected"). The "detail" entry, when present, is appended
// after the localized text.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"illegal_start":         "illegal start of JSON value",
		"unexpected_char":       "JSON is not grammatically correct",
		"out_of_data":           "out of data while reading JSON value",
		"bad_escape":            "illegal escape value in string",
		"bad_unicode":           "illegal unicode value",
		"bad_number":            "content does not appear to be a number",
		"bad_literal":           "content does not appear to be a literal",
		"unterminated_comment":  "unterminated block comment at end of input",
		"duplicate_key":         "duplicate key",
		"max_depth":             "max depth exceeded",
		"discriminator_type":    "type value is not a string",
		"discriminator_unknown": "type value does not name a registered type",
		"parse_error":           "parse error",
	},
	"ja": {
		"illegal_start":         "JSON値の開始文字が不正です",
		"unexpected_char":       "JSONの文法が正しくありません",
		"out_of_data":           "JSON値の読み取り中にデータが終了しました",
		"bad_escape":            "文字列のエスケープが不正です",
		"bad_unicode":           "Unicode値が不正です",
		"bad_number":            "数値ではありません",
		"bad_literal":           "リテラルではありません",
		"unterminated_comment":  "ブロックコメントが閉じられていません",
		"duplicate_key":         "キーが重複しています",
		"max_depth":             "最大ネスト深度を超えました",
		"discriminator_type":    "型の値が文字列ではありません",
		"discriminator_unknown": "型の値が登録済みの型を示していません",
		"parse_error":           "解析エラー",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		msg = code
	}
	return withData(msg, data)
}

// withData appends the detail entry, then any remaining entries in key order.
func withData(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	b := &strings.Builder{}
	b.WriteString(msg)
	if d := data["detail"]; d != "" {
		b.WriteString(": ")
		b.WriteString(d)
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != "detail" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" (")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(data[k])
		b.WriteString(")")
	}
	return b.String()
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
