package hsnseed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"billbook/internal/gst"
)

// WriteSQL renders entries as a transactional seed script of batched inserts
// that skip rows already present.
func WriteSQL(w io.Writer, entries []gst.HSNEntry, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "-- HSN/SAC master: %d entries in batches of %d.\n", len(entries), batchSize)
	bw.WriteString("BEGIN;\n")
	for start := 0; start < len(entries); start += batchSize {
		end := min(start+batchSize, len(entries))
		bw.WriteString("\nINSERT INTO hsn_codes (code, description, gst_rate, condition_desc) VALUES\n")
		for i, e := range entries[start:end] {
			if i > 0 {
				bw.WriteString(",\n")
			}
			fmt.Fprintf(bw, "  ('%s', '%s', %s, '%s')",
				quote(e.Code), quote(e.Description), e.GSTRate.StringFixed(2), quote(e.ConditionDesc))
		}
		bw.WriteString("\nON CONFLICT (code, gst_rate, condition_desc, effective_from) DO NOTHING;\n")
	}
	bw.WriteString("\nCOMMIT;\n")
	return bw.Flush()
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
