package domain

import "time"

// LanguageDefault is used when a preference carries no language.
const LanguageDefault = "en"

var dayNames = map[string][7]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"ja": {"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"},
}

var dayNameError = map[string]string{
	"en": "invalid date",
	"ja": "日付エラー",
}

// DayName resolves the localized weekday name for an ISO date. A date that
// fails to parse resolves to a per-language sentinel instead of aborting the
// derivation pipeline. Unknown languages fall back to English.
func DayName(date, lang string) string {
	if _, ok := dayNames[lang]; !ok {
		lang = LanguageDefault
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return dayNameError[lang]
	}
	names := dayNames[lang]
	return names[int(t.Weekday())]
}
