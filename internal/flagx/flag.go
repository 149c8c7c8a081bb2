// Package flagx helps several loaders share os.Args without tripping over
// each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the arguments naming one of allowedFlags, together
// with their values. Both "-a value" and "-a=value" forms are recognised; a
// value is taken from the next argument only when it does not itself look like
// a flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config, or
// an empty string when neither is present.
func JsonConfigFlags() string {
	return jsonConfigPath(os.Args[1:])
}

func jsonConfigPath(args []string) string {
	var path string
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))
	return path
}
