package criteria

import (
	"strconv"
	"strings"

	"github.com/viant/gridpricer/model"
	"github.com/viant/gridpricer/service/dao"
)

const (
	// Category matches model.Item.Category by name
	Category = "Category"
	// Priced matches whether an item holds a price ("true"/"false")
	Priced = "Priced"
)

// MatchItem reports whether item satisfies every parameter. Unknown
// parameters are ignored.
func MatchItem(item *model.Item, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		var actual string
		switch parameter.Name {
		case Category:
			actual = item.Category.String()
		case Priced:
			actual = strconv.FormatBool(item.IsPriced())
		default:
			continue
		}
		if !matches(actual, parameter.Value) {
			return false
		}
	}
	return true
}

func matches(actual string, expected interface{}) bool {
	switch value := expected.(type) {
	case string:
		return strings.EqualFold(actual, value)
	case []string:
		for _, candidate := range value {
			if strings.EqualFold(actual, candidate) {
				return true
			}
		}
		return false
	}
	return true
}
