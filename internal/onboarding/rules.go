package onboarding

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/janisto/echo-onboarding/internal/platform/timeutil"
)

// Rule is one predicate in a field's rule chain together with the message
// reported when the predicate fails. Describe, when set, builds the message
// from the rejected value instead.
type Rule[T any] struct {
	Message  string
	Valid    func(T) bool
	Describe func(T) string
}

func (r Rule[T]) message(v T) string {
	if r.Describe != nil {
		return r.Describe(v)
	}
	return r.Message
}

// field couples a wire name with its rule chain. check returns the message
// of the first failing rule, or "" after storing the typed value in rec.
type field struct {
	name  string
	value func(Input) string
	check func(Input, *Record) string
}

// chain builds a field that evaluates rules in order, first failure wins.
func chain[T any](name string, get func(Input) T, set func(*Record, T), rules ...Rule[T]) field {
	return field{
		name:  name,
		value: func(in Input) string { return fmt.Sprintf("%v", get(in)) },
		check: func(in Input, rec *Record) string {
			v := get(in)
			for _, r := range rules {
				if !r.Valid(v) {
					return r.message(v)
				}
			}
			set(rec, v)
			return ""
		},
	}
}

// optional skips f entirely when present reports false.
func optional(f field, present func(Input) bool) field {
	check := f.check
	f.check = func(in Input, rec *Record) string {
		if !present(in) {
			return ""
		}
		return check(in, rec)
	}
	return f
}

func required(msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: func(s string) bool { return s != "" }}
}

func minRunes(n int, msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: func(s string) bool { return utf8.RuneCountInString(s) >= n }}
}

func maxRunes(n int, msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: func(s string) bool { return utf8.RuneCountInString(s) <= n }}
}

func matches(re *regexp.Regexp, msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: re.MatchString}
}

var syntax = validator.New()

func emailSyntax(msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: func(s string) bool { return syntax.Var(s, "email") == nil }}
}

func knownServices() Rule[[]string] {
	return Rule[[]string]{
		Valid: func(values []string) bool {
			_, found := firstUnknown(values)
			return !found
		},
		Describe: func(values []string) string {
			v, _ := firstUnknown(values)
			return fmt.Sprintf("Invalid service %q. Expected one of: %s", v, serviceList())
		},
	}
}

func firstUnknown(values []string) (string, bool) {
	for _, v := range values {
		if _, ok := ParseService(v); !ok {
			return v, true
		}
	}
	return "", false
}

func atLeastOne(msg string) Rule[[]string] {
	return Rule[[]string]{Message: msg, Valid: func(values []string) bool { return len(values) > 0 }}
}

// budgetAmount parses a provided budget as a finite number.
func budgetAmount(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numeric(msg string) Rule[Budget] {
	return Rule[Budget]{Message: msg, Valid: func(b Budget) bool {
		_, ok := budgetAmount(b.raw)
		return ok
	}}
}

func whole(msg string) Rule[Budget] {
	return Rule[Budget]{Message: msg, Valid: func(b Budget) bool {
		f, _ := budgetAmount(b.raw)
		return f == math.Trunc(f)
	}}
}

func amountAtLeast(n float64, msg string) Rule[Budget] {
	return Rule[Budget]{Message: msg, Valid: func(b Budget) bool {
		f, _ := budgetAmount(b.raw)
		return f >= n
	}}
}

func amountAtMost(n float64, msg string) Rule[Budget] {
	return Rule[Budget]{Message: msg, Valid: func(b Budget) bool {
		f, _ := budgetAmount(b.raw)
		return f <= n
	}}
}

func calendarDate(msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: func(s string) bool {
		_, err := timeutil.ParseDate(s)
		return err == nil
	}}
}

func notBefore(today timeutil.Date, msg string) Rule[string] {
	return Rule[string]{Message: msg, Valid: func(s string) bool {
		d, err := timeutil.ParseDate(s)
		return err == nil && !d.Before(today)
	}}
}

func isTrue(msg string) Rule[bool] {
	return Rule[bool]{Message: msg, Valid: func(b bool) bool { return b }}
}
