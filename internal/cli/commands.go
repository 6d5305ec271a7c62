// internal/cli/commands.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand returns the vbt root with help and version wiring only.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "vbt",
		Short: "variant benchmarking: compare a query call set against a baseline",
		Long: `vbt compares two VCF call sets against a reference. Calls are grouped
into regions and every region is replayed on both haplotypes, so calls that
describe the same sequence in different ways still match.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("vbt version {{.Version}}\n")
	return root
}

// NewCompareCommand wires the compare flags; run receives the resolved
// options and returns the process exit code through code.
func NewCompareCommand(run func(cmd *cobra.Command, o Options) int, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare -r REF.fa -b BASELINE.vcf -q QUERY.vcf",
		Short: "label every baseline and query call as TP, FP, FN or N",
		Args:  cobra.NoArgs,
		Example: `  vbt compare -r ref.fa -b truth.vcf.gz -q calls.vcf.gz > records.tsv
  vbt compare -c vbt.yaml --decisions FP,FN -o jsonl --summary summary.json`,
	}
	v := RegisterCompareFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		o, err := v.Resolve(cmd.Flags())
		if err != nil {
			return err
		}
		*code = run(cmd, o)
		return nil
	}
	return cmd
}

// NewVersionCommand prints the version.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "vbt version %s\n", version)
			return err
		},
	}
}
