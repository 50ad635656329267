package onboarding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input is an onboarding candidate exactly as the user entered it.
type Input struct {
	FullName         string   `json:"fullName"         yaml:"fullName"`
	Email            string   `json:"email"            yaml:"email"`
	CompanyName      string   `json:"companyName"      yaml:"companyName"`
	Services         []string `json:"services"         yaml:"services"`
	BudgetUSD        Budget   `json:"budgetUsd"        yaml:"budgetUsd"`
	ProjectStartDate string   `json:"projectStartDate" yaml:"projectStartDate"`
	AcceptTerms      bool     `json:"acceptTerms"      yaml:"acceptTerms"`
}

// Budget is the optional budget field at the input boundary. Absent, null,
// and empty input all collapse to "not provided" here so the rule chain only
// sees provided values.
type Budget struct {
	raw string
	set bool
}

// NoBudget is the "not provided" budget.
var NoBudget = Budget{}

// BudgetOf returns a provided budget of n dollars.
func BudgetOf(n int) Budget {
	return Budget{raw: fmt.Sprint(n), set: true}
}

// ParseBudget wraps a raw entry. Blank text means not provided.
func ParseBudget(s string) Budget {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoBudget
	}
	return Budget{raw: s, set: true}
}

// Provided reports whether a budget was entered.
func (b Budget) Provided() bool { return b.set }

// Raw returns the entered text.
func (b Budget) Raw() string { return b.raw }

func (b Budget) String() string {
	if !b.set {
		return ""
	}
	return b.raw
}

// UnmarshalJSON accepts a number, a string, or null.
func (b *Budget) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = NoBudget
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = ParseBudget(s)
	default:
		*b = Budget{raw: string(data), set: len(data) > 0}
	}
	return nil
}

// MarshalJSON emits numeric entries as numbers and anything else as a string.
func (b Budget) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	if _, ok := budgetAmount(b.raw); ok && json.Valid([]byte(b.raw)) {
		return []byte(b.raw), nil
	}
	return json.Marshal(b.raw)
}

// UnmarshalYAML accepts any scalar; null and blank mean not provided.
func (b *Budget) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("budgetUsd: expected a scalar, got line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*b = NoBudget
		return nil
	}
	*b = ParseBudget(node.Value)
	return nil
}
