package output

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"

	// FormatVCFSplit writes one VCF per side and decision into a directory.
	FormatVCFSplit = "vcf-split"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "chrom\tpos\tid\tref\talt\tgt\tside\tdecision\tkind\tregion\tlower_bound\treason"
