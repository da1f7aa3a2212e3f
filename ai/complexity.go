package ai

import (
	"fmt"

	"github.com/DefiantLabs/crypto-tax/util"
)

type Complexity string

const (
	Simple  Complexity = "simple"
	Complex Complexity = "complex"
)

// Simple tasks go to the free tier, complex ones to the paid tier.
var tiers = map[Complexity][]string{
	Simple:  {"deepseek-chat", "gemini-pro"},
	Complex: {"gpt-4o", "claude-3-opus"},
}

func ValidComplexities() []string {
	return []string{string(Simple), string(Complex)}
}

func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(util.NormalizeKey(s))
	if _, ok := tiers[c]; !ok {
		return "", fmt.Errorf("invalid complexity %s, valid values are %s", s, ValidComplexities())
	}
	return c, nil
}
