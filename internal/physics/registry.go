package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/trails/internal/dynamo"
)

var fields = map[string]func() dynamo.Field{
	"lorenz":  func() dynamo.Field { return NewLorenz() },
	"rossler": func() dynamo.Field { return NewRossler() },
}

// New returns a fresh field by name with its params overridden.
func New(name string, params map[string]float64) (dynamo.Field, error) {
	ctor, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownModel)
	}
	f := ctor()
	if len(params) == 0 {
		return f, nil
	}
	c, ok := f.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("%s takes no parameters: %w", name, dynamo.ErrParameterBounds)
	}
	for _, k := range sortedKeys(params) {
		if err := c.SetParam(k, params[k]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Names lists registered fields in sorted order.
func Names() []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
