// Package command recognizes the client commands that bypass the SQL
// grammar: CLEAR, HELP, QUIT/EXIT, RESET and SET.
//
// Recognizers are tried in order against the trimmed statement and the
// first match wins. A statement no recognizer claims goes to the parser.
package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
)

// Recognizer claims statements whose keyword matches Keyword. Pattern must
// then match the whole statement, otherwise the statement is malformed.
type Recognizer struct {
	Name    string
	Keyword *regexp.Regexp
	Pattern *regexp.Regexp
	// Help is a one line description shown by HELP.
	Help string
	// Convert builds the operation from Pattern's submatches.
	Convert func(groups []string) (operation.Operation, error)
}

// Chain is an ordered list of recognizers.
type Chain []Recognizer

// DefaultChain is the chain used by Recognize.
var DefaultChain = Chain{
	simple("CLEAR", `CLEAR`, "Clears the terminal.", func() operation.Operation { return &operation.ClearOperation{} }),
	simple("HELP", `HELP`, "Prints the available commands.", func() operation.Operation { return &operation.HelpOperation{} }),
	simple("QUIT", `(QUIT|EXIT)`, "Quits the client.", func() operation.Operation { return &operation.QuitOperation{} }),
	simple("RESET", `RESET`, "Resets all session properties.", func() operation.Operation { return &operation.ResetOperation{} }),
	{
		Name:    "SET",
		Keyword: regexp.MustCompile(`(?is)^SET(\s|$)`),
		Pattern: regexp.MustCompile(`(?is)^SET(\s+(\S+)\s*=(.+))?$`),
		Help:    "Sets a session property. Use 'SET' to list all properties.",
		Convert: convertSet,
	},
}

func simple(name, pattern, help string, build func() operation.Operation) Recognizer {
	re := regexp.MustCompile(`(?is)^` + pattern + `$`)
	return Recognizer{
		Name:    name,
		Keyword: re,
		Pattern: re,
		Help:    help,
		Convert: func([]string) (operation.Operation, error) { return build(), nil },
	}
}

// convertSet builds a SetOperation. groups[2] is the key and groups[3] the
// value; both are empty for a bare SET.
// The key is the longest run of non-space characters before an '=' that
// still leaves a value, so "SET a=b=c" sets a=b to c.
func convertSet(groups []string) (operation.Operation, error) {
	if groups[1] == "" {
		return &operation.SetOperation{}, nil
	}
	key := strings.TrimSpace(groups[2])
	value := strings.TrimSpace(groups[3])
	if value == "" {
		return nil, fmt.Errorf("empty value for key %q", key)
	}
	return &operation.SetOperation{Key: key, Value: value}, nil
}

// Recognize runs the default chain.
func Recognize(stmt string) (operation.Operation, bool, error) {
	return DefaultChain.Recognize(stmt)
}

// Recognize returns the operation of the first recognizer claiming stmt.
// ok is false when no recognizer claims it. A claimed statement that does
// not have the expected shape fails with a KindMalformed *binder.Error.
func (c Chain) Recognize(stmt string) (op operation.Operation, ok bool, err error) {
	trimmed := strings.TrimSpace(stmt)
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))

	for _, r := range c {
		if !r.Keyword.MatchString(trimmed) {
			continue
		}
		groups := r.Pattern.FindStringSubmatch(trimmed)
		if groups == nil {
			return nil, true, malformed(r.Name, stmt, nil)
		}
		op, err := r.Convert(groups)
		if err != nil {
			return nil, true, malformed(r.Name, stmt, err)
		}
		return op, true, nil
	}
	return nil, false, nil
}

func malformed(name, stmt string, cause error) error {
	msg := fmt.Sprintf("Failed to convert the statement to %s operation: %s.", name, stmt)
	return binder.NewError(binder.KindMalformed, stmt, msg, cause)
}

// Names returns the recognizer names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}
