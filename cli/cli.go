package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/jitcalc/calc"
	"github.com/ardnew/jitcalc/cli/cmd"
	"github.com/ardnew/jitcalc/pkg"
)

// CLI is the top-level command-line interface for jitcalc.
type CLI struct {
	Log    logConfig   `embed:"" group:"log"    prefix:"log-"`
	Pprof  pprofConfig `embed:"" group:"pprof"  prefix:"pprof-"`
	Engine cmd.Engine  `embed:"" group:"engine"`

	Eval    cmd.Eval    `cmd:"" default:"withargs" help:"Evaluate expressions (default)"`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session"`
	AST     cmd.AST     `cmd:""                    help:"Print the syntax tree of an expression" name:"ast"`
	Asm     cmd.Asm     `cmd:""                    help:"Print the machine code of an expression"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                    help:"Print version information"`
}

func engineGroup() kong.Group {
	var group kong.Group

	group.Key = "engine"
	group.Title = "Evaluation options"

	return group
}

// Run executes the jitcalc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Engine.Vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), engineGroup()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithEngine(ctx, cli.Engine)
	ctx = cmd.WithMetrics(ctx, calc.NewMetrics())

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// The context provider is first called here, after ctx holds every value
	// stored above.
	return ktx.Run()
}
