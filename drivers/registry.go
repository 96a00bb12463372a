package drivers

import (
	"sort"

	cerrors "github.com/iwtcode/cyclerAdapter/pkg/errors"
)

// Registry сопоставляет имя драйвера с его маппером.
// Новый драйвер добавляется регистрацией, существующие мапперы не меняются.
type Registry struct {
	mappers map[string]Mapper
}

func NewRegistry(mappers ...Mapper) *Registry {
	r := &Registry{mappers: make(map[string]Mapper, len(mappers))}
	for _, m := range mappers {
		r.Register(m)
	}
	return r
}

// Register добавляет маппер; повторная регистрация имени заменяет предыдущий.
func (r *Registry) Register(m Mapper) {
	r.mappers[m.Name()] = m
}

// Lookup возвращает маппер по точному имени или UnknownDriverError.
func (r *Registry) Lookup(name string) (Mapper, error) {
	m, ok := r.mappers[name]
	if !ok {
		return nil, &cerrors.UnknownDriverError{Name: name}
	}
	return m, nil
}

// Names возвращает отсортированный список зарегистрированных драйверов.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.mappers))
	for name := range r.mappers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
