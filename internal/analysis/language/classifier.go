package language

import "strings"

// Label names the script/vocabulary family of a student message.
type Label string

const (
	Urdu    Label = "urdu"
	Roman   Label = "roman"
	English Label = "english"
)

// Arabic-script block covering written Urdu.
const (
	arabicBlockStart = '؀'
	arabicBlockEnd   = 'ۿ'
)

// Common transliterated Urdu function words. Substring match is intentional;
// occasional false positives are accepted for a lexical check.
var romanKeywords = []string{"hai", "kya", "kia", "sawal", "samajh", "theek"}

// Detect labels raw input text. Script wins over vocabulary: a single
// Urdu-script rune classifies the whole message as urdu.
func Detect(text string) Label {
	for _, r := range text {
		if r >= arabicBlockStart && r <= arabicBlockEnd {
			return Urdu
		}
	}

	lowered := strings.ToLower(text)
	for _, word := range romanKeywords {
		if strings.Contains(lowered, word) {
			return Roman
		}
	}

	return English
}
