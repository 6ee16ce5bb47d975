// Package phone нормализует номера мобильных телефонов к единому
// каноническому виду, который используется как ключ участника во всех
// реестрах: 11 цифр, начинается с "09".
package phone

import "strings"

const (
	countryPrefix = "98"
	localLength   = 11
)

// Normalize приводит произвольный ввод к каноническому виду:
//   - удаляет все символы кроме цифр
//   - "98" + 10 цифр (международный формат) -> "0" + остаток
//   - 10 цифр, начинающихся с "9" -> "0" + номер
//
// Всё остальное возвращается без изменений; валидность итоговой формы
// проверяется отдельно через IsValid. Normalize идемпотентна.
func Normalize(raw string) string {
	var b strings.Builder
	for _, ch := range raw {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	p := b.String()

	if strings.HasPrefix(p, countryPrefix) && len(p) == 12 {
		p = "0" + p[2:]
	}
	if len(p) == 10 && strings.HasPrefix(p, "9") {
		p = "0" + p
	}
	return p
}

// IsValid проверяет каноническую форму: ровно 11 цифр, префикс "09"
func IsValid(p string) bool {
	return len(p) == localLength && strings.HasPrefix(p, "09")
}
