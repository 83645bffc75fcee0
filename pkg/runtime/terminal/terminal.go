package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Samayeeta/indicure-ey/pkg/document"
	"github.com/Samayeeta/indicure-ey/pkg/document/style"
	"github.com/Samayeeta/indicure-ey/pkg/runtime/terminal/commands"
	"github.com/Samayeeta/indicure-ey/pkg/runtime/terminal/export"
	exportsvc "github.com/Samayeeta/indicure-ey/pkg/services/export"
)

// CLI represents the command-line interface
type CLI struct {
	fs       afero.Fs
	exports  exportsvc.Controller
	composer *document.Composer
	styles   style.Registry
	reporter *export.Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Exports  exportsvc.Controller
	Composer *document.Composer
	Styles   style.Registry
	Fs       afero.Fs
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Composer == nil {
		opts.Composer = document.DefaultComposer()
	}
	if opts.Styles == nil {
		opts.Styles = style.Default()
	}

	cli := &CLI{
		fs:       opts.Fs,
		exports:  opts.Exports,
		composer: opts.Composer,
		styles:   opts.Styles,
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "indicure",
		Short:         "Drug repurposing report tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	cmd.AddCommand(commands.NewRenderCmd(cli.fs, cli.exports))
	cmd.AddCommand(commands.NewExportCmd(cli.fs, cli.exports))
	cmd.AddCommand(commands.NewOutlineCmd(cli.fs, cli.composer, cli.reporter))
	cmd.AddCommand(commands.NewStylesCmd(cli.styles, NewStyleReporter(cli.output)))

	return cmd
}
