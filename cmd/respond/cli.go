package respond

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
)

var version = "0.1.0"

var globalConfigPath string

func setConfigPath(path string) { globalConfigPath = path }
func configPath() string        { return globalConfigPath }

// Run dispatches to the sub-command selected by the leading argument.
func Run(args []string) {
	setConfigPath(extractConfigPath(args))

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		// go-flags has already written its own diagnostics to stderr.
		log.Fatalf("%v", err)
	}

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
}

// extractConfigPath pulls -f/--config out of the raw arguments ahead of the
// full parse; sub-commands load the config during Execute, before go-flags
// has bound the flag value anywhere they can reach.
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}
