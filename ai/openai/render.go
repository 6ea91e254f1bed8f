package openai

import (
	"fmt"
	"strings"

	"github.com/plantqa/qamatrix/core"
)

// renderCatalog formats the concern catalog as the context block shared by
// every batch request.
func renderCatalog(concerns []core.Concern) string {
	var b strings.Builder
	b.WriteString("Catalog:\n")
	for _, c := range concerns {
		fmt.Fprintf(&b, "[%d] %q (station: %s, area: %s)\n",
			c.SerialNo, c.Text, c.Station, c.Designation)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderBatch formats one defect batch. Each line is prefixed with the
// defect's global index so the service can echo it back verbatim.
func renderBatch(defects []core.Defect, indexOffset int) string {
	var b strings.Builder
	b.WriteString("Defects:\n")
	for i, d := range defects {
		fmt.Fprintf(&b, "[%d] Location: %q | Defect: %q | Details: %q | Gravity: %q\n",
			indexOffset+i, d.Location, d.Description, d.Details, d.Gravity)
	}
	return strings.TrimRight(b.String(), "\n")
}
