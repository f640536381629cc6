// Package template - Declarative answer mapping
package template

import "energy-quote/core/types"

// ApplyTemplateMapping transforms raw answers into the canonical input shape
// the template's calculator expects, applying the template's declared
// rename/unit-conversion/derived rules.
//
// Pure: same (template, answers) always yields the same output, and no
// defaults are introduced beyond what the rules declare. Only keys a rule
// actually produced appear in the result; callers merge raw answers
// underneath (see MergeRaw) so unmapped legacy field names stay visible.
func ApplyTemplateMapping(t *types.Template, answers types.Answers) types.CalcInputs {
	mapped := make(types.CalcInputs)
	if t == nil {
		return mapped
	}

	for _, rule := range t.Mapping {
		if len(rule.Combine) > 0 {
			v, ok := combine(rule, answers)
			if ok {
				mapped[rule.To] = v
			}
			continue
		}
		if rule.From == "" || !answers.Has(rule.From) {
			continue
		}
		raw := answers.Get(rule.From)
		if rule.Scale != 0 {
			if _, isNum := numeric(raw); isNum {
				mapped[rule.To] = answers.GetFloat(rule.From) * rule.Scale
				continue
			}
		}
		mapped[rule.To] = raw
	}

	return mapped
}

// combine evaluates a derived composite rule. The rule fires only when every
// operand is present and numeric.
func combine(rule types.MappingRule, answers types.Answers) (float64, bool) {
	acc := 0.0
	if rule.Op == types.CombineProduct {
		acc = 1.0
	}
	for _, key := range rule.Combine {
		if !answers.Has(key) {
			return 0, false
		}
		n, ok := numeric(answers.Get(key))
		if !ok {
			return 0, false
		}
		switch rule.Op {
		case types.CombineProduct:
			acc *= n
		default: // sum
			acc += n
		}
	}
	return acc, true
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// MergeRaw layers mapped values over raw answers: every raw answer remains
// visible unless a mapping rule produced the same key, in which case the
// mapped value wins. Calculators may rely on this merge order.
func MergeRaw(mapped types.CalcInputs, raw types.Answers) types.CalcInputs {
	out := make(types.CalcInputs, len(mapped)+len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for k, v := range mapped {
		out[k] = v
	}
	return out
}
