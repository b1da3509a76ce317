package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName              = "bool"
	booleanFlagTrueLiteral           = "true"
	booleanFlagUnsetLiteral          = "unset"
	booleanFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
	errorInvalidBooleanFormat        = "invalid boolean value %q for --%s; accepted values: %s"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// optionalBooleanFlag leaves its target nil until the flag is given, so an
// unset flag never overrides configuration.
type optionalBooleanFlag struct {
	target  **bool
	flagKey string
}

func (value *optionalBooleanFlag) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf(errorInvalidBooleanFormat, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = &parsed
	return nil
}

func (value *optionalBooleanFlag) String() string {
	if value == nil || value.target == nil || *value.target == nil {
		return booleanFlagUnsetLiteral
	}
	return strconv.FormatBool(**value.target)
}

func (value *optionalBooleanFlag) Type() string {
	return booleanFlagTypeName
}

// registerOptionalBooleanFlag adds a flag accepting --name, --name=value and --name value.
func registerOptionalBooleanFlag(flagSet *pflag.FlagSet, target **bool, name string, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	flagSet.Var(&optionalBooleanFlag{target: target, flagKey: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = booleanFlagUnsetLiteral
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--name value" into "--name=value" for
// optional boolean flags followed by a boolean literal; pflag would otherwise treat the
// literal as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		flagName, isLongFlag := strings.CutPrefix(currentArgument, "--")
		if isLongFlag && !strings.Contains(flagName, "=") && index+1 < len(arguments) {
			if _, isBoolean := booleanFlags[flagName]; isBoolean {
				literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
				if _, valid := booleanFlagLiterals[literal]; valid {
					normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, arguments[index+1]))
					index++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flagSet *pflag.FlagSet) {
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if _, optional := flag.Value.(*optionalBooleanFlag); optional {
				target[flag.Name] = struct{}{}
			}
		})
	}
	visit(command.PersistentFlags())
	visit(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
