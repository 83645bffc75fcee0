package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Samayeeta/indicure-ey/pkg/document"
	"github.com/Samayeeta/indicure-ey/pkg/runtime/terminal/export"
)

type OutlineCmd struct {
	input    string
	fs       afero.Fs
	composer *document.Composer
	reporter *export.Reporter
}

func NewOutlineCmd(fs afero.Fs, composer *document.Composer, reporter *export.Reporter) *cobra.Command {
	oc := &OutlineCmd{fs: fs, composer: composer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Print the section outline a report would render to",
		RunE:  oc.run,
	}

	cmd.Flags().StringVarP(&oc.input, "input", "i", "", "Path to the report (.json, .yaml)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (oc *OutlineCmd) run(_ *cobra.Command, _ []string) error {
	report, err := readReport(oc.fs, oc.input)
	if err != nil {
		return err
	}

	doc, err := oc.composer.Compose(report)
	if err != nil {
		return fmt.Errorf("failed to compose %s: %w", oc.input, err)
	}
	return oc.reporter.Handle(export.NewOutline(doc))
}
