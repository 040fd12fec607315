package profiles

import (
	"sort"
	"strings"
)

// ValidationErrors maps a field name to the messages describing why its value was rejected.
type ValidationErrors map[string][]string

func (e ValidationErrors) Add(field string, message string) {
	e[field] = append(e[field], message)
}

func (e ValidationErrors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid fields:")
	for _, field := range fields {
		b.WriteString(" " + field + " (" + strings.Join(e[field], "; ") + ")")
	}
	return b.String()
}

// OrNil returns nil when no field was rejected so the result can be returned as error.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
