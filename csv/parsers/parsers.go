package parsers

import "sort"

// Parsers should be used to check in your parsers.
var Parsers map[string]bool

func init() {
	Parsers = make(map[string]bool)
}

func RegisterParsers(keys []string) {
	for _, key := range keys {
		Parsers[key] = true
	}
}

func GetParserKeys() []string {
	var parserKeys []string

	for i := range Parsers {
		parserKeys = append(parserKeys, i)
	}
	sort.Strings(parserKeys)

	return parserKeys
}
