package plan

import "fmt"

// lookup возвращает значение ключа; явный null считается отсутствием ключа.
func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
