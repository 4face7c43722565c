package main

import (
	"fmt"
	"strings"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
	"github.com/leylaiskandarli/average-squares/internal/parse"
)

// rootValueFlags are the root flags that consume the following argument.
var rootValueFlags = map[string]bool{
	"--config":       true,
	"-c":             true,
	"--log-level":    true,
	"--weights":      true,
	"-w":             true,
	"--weights-file": true,
}

// normalizeArgs inserts "--" before the first positional argument of the
// root command when it is a negative number, so "squares -1 2" is read as
// numbers rather than an unknown flag. Subcommand invocations pass through.
func normalizeArgs(args []string) []string {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case isNegativeNumber(arg):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case rootValueFlags[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			// first positional or a subcommand name: flag parsing stops here
			return args
		}
	}
	return args
}

func isNegativeNumber(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	values, err := parse.Line(arg)
	return err == nil && len(values) > 0
}

// splitPositional separates numbers from a trailing weights group
// ("2 4 --weights 1 0.5"). Weights is nil when no group is present. Any
// other flag after the numbers is a usage error.
func splitPositional(args []string) (numbers, weights []string, err error) {
	inWeights := false
	for _, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		switch {
		case arg == "--":
			continue
		case name == "--weights" || name == "-w":
			inWeights = true
			if weights == nil {
				weights = []string{}
			}
			if hasValue {
				weights = append(weights, value)
			}
		case strings.HasPrefix(arg, "-") && !isNegativeNumber(arg):
			return nil, nil, apperrors.NewArgumentError("flags", fmt.Sprintf(
				"flag %s must come before the numbers; only --weights may follow them", name))
		case inWeights:
			weights = append(weights, arg)
		default:
			numbers = append(numbers, arg)
		}
	}
	if weights != nil && len(weights) == 0 {
		return nil, nil, apperrors.NewArgumentError("weights", "--weights needs at least one value")
	}
	return numbers, weights, nil
}
