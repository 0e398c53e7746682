package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/jsgo"
	"github.com/example/jsgo/parser"
	"github.com/example/jsgo/runtime"
)

// consoleShim creates a console object using the registered _print/_printErr natives.
const consoleShim = `var console = {
	log: function() { var i = 0; var s = ""; while (i < arguments.length) { if (i > 0) s = s + " "; s = s + arguments[i]; i++; } _print(s); },
	warn: function() { var i = 0; var s = ""; while (i < arguments.length) { if (i > 0) s = s + " "; s = s + arguments[i]; i++; } _printErr(s); },
	error: function() { var i = 0; var s = ""; while (i < arguments.length) { if (i > 0) s = s + " "; s = s + arguments[i]; i++; } _printErr(s); },
	info: function() { var i = 0; var s = ""; while (i < arguments.length) { if (i > 0) s = s + " "; s = s + arguments[i]; i++; } _print(s); }
};
`

var (
	evalCode   string
	dumpAST    bool
	stackLimit int
	sourceName string
	verbose    bool
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "jsgo [file.js]",
		Short: "jsgo runs ECMAScript-family scripts against the embeddable jsgo interpreter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log = log.Level(zerolog.DebugLevel)
			} else {
				log = log.Level(zerolog.WarnLevel)
			}
			return run(args, log)
		},
	}

	root.Flags().StringVarP(&evalCode, "eval", "e", "", "evaluate inline script code instead of reading a file")
	root.Flags().BoolVar(&dumpAST, "ast", false, "dump the parsed AST as JSON instead of running it")
	root.Flags().IntVar(&stackLimit, "stack-limit", 500, "maximum captured script call-stack depth for thrown errors")
	root.Flags().StringVar(&sourceName, "source-name", "", "source name reported in error messages (defaults to the file name or \"<eval>\")")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine-level diagnostics to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, log zerolog.Logger) error {
	var source string
	name := sourceName

	switch {
	case evalCode != "":
		source = evalCode
		if name == "" {
			name = "<eval>"
		}
	case len(args) > 0:
		filename := args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		source = string(data)
		if name == "" {
			name = filename
		}
	default:
		return fmt.Errorf("no script given: pass a file path or -e \"code\"")
	}

	if dumpAST {
		p := parser.New(source)
		program, errs := p.ParseProgram()
		if len(errs) > 0 {
			for _, err := range errs {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(program)
	}

	log.Debug().Str("source", name).Int("stackLimit", stackLimit).Msg("starting interpreter")

	ctx := jsgo.NewContext().Enter()
	defer ctx.Exit()
	ctx.InitStandardObjects()
	ctx.SetMaxStackFrames(stackLimit)
	registerNatives(ctx)

	fullSource := consoleShim + source
	result, err := ctx.EvaluateString(nil, fullSource, name, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result != nil && result.Type != runtime.TypeUndefined {
		fmt.Println(result.ToString())
	}
	return nil
}

func registerNatives(ctx *jsgo.Context) {
	ctx.RegisterNative("_print", func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) > 0 {
			fmt.Println(args[0].ToString())
		} else {
			fmt.Println()
		}
		return runtime.Undefined, nil
	})
	ctx.RegisterNative("_printErr", func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) > 0 {
			fmt.Fprintln(os.Stderr, args[0].ToString())
		} else {
			fmt.Fprintln(os.Stderr)
		}
		return runtime.Undefined, nil
	})
}
