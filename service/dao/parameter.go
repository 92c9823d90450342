package dao

// Parameter narrows a List call, e.g. Category=long or Priced=true
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a parameter holding a single value or a value list
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
