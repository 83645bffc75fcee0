package commands

import (
	"github.com/spf13/cobra"

	"github.com/Samayeeta/indicure-ey/pkg/document/style"
)

type styleReporter interface {
	Handle(registry style.Registry) error
}

func NewStylesCmd(registry style.Registry, reporter styleReporter) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the document styles",
		RunE: func(_ *cobra.Command, _ []string) error {
			return reporter.Handle(registry)
		},
	}
}
