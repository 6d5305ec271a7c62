// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vcfbench/internal/appcore"
	"vcfbench/internal/cli"
	"vcfbench/internal/duo"
	"vcfbench/internal/version"
	"vcfbench/internal/visitors"
	"vcfbench/internal/writers"
)

// RunContext executes vbt with argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := 0
	root := cli.NewRootCommand(version.Version)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(
		cli.NewCompareCommand(func(_ *cobra.Command, o cli.Options) int {
			return compare(parent, stdout, stderr, o)
		}, &code),
		cli.NewVersionCommand(version.Version),
	)

	if err := root.ExecuteContext(parent); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	return code
}

func compare(ctx context.Context, stdout, stderr io.Writer, o cli.Options) int {
	coreOpts := appcore.Options{Config: o.Config, Quiet: o.Quiet}
	out := o.Config.Output
	writer := appcore.NewRecordWriterFactory(out.Format, out.Sort, out.Header)
	writer.OutDir = out.OutDir
	visit := appcore.VisitorFunc[duo.Record](visitors.PassThrough{}.Visit)
	if len(o.Decisions) > 0 {
		visit = o.Decisions.Visit
	}
	return appcore.Run[duo.Record](ctx, stdout, stderr, coreOpts, visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
