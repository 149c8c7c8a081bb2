package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/flows"
	"github.com/dmitrijs2005/stockkeeper/internal/client/listing"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const historyTimeLayout = "2006-01-02 15:04:05"

var numbers = message.NewPrinter(language.English)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderProducts(w io.Writer, s listing.State) {
	if s.Query.Search != "" || s.Query.Category != "" {
		var parts []string
		if s.Query.Search != "" {
			parts = append(parts, fmt.Sprintf("Search: %q", s.Query.Search))
		}
		if s.Query.Category != "" {
			parts = append(parts, "Category: "+s.Query.Category)
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}

	if s.Err != nil && client.Classify(s.Err) != client.KindAuthorization {
		fmt.Fprintln(w, "Error loading products")
		return
	}
	if len(s.Products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tNAME\tUNIT\tCATEGORY\tBRAND\tSTOCK\tSTATUS")
	for i, p := range s.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, p.Name, p.Unit, p.Category, p.Brand, numbers.Sprintf("%d", p.Stock), p.Status)
	}
	tw.Flush()

	from, to := s.Pagination.Range()
	if from > 0 {
		fmt.Fprintln(w, numbers.Sprintf("Showing %d to %d of %d results", from, to, s.Pagination.Total))
	}
	if s.Pagination.Pages > 1 {
		fmt.Fprintf(w, "Page %d of %d\n", s.Pagination.Current, s.Pagination.Pages)
	}
}

func renderCategories(w io.Writer, cats []string, selected string) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories")
		return
	}
	for _, c := range cats {
		marker := " "
		if c == selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, c)
	}
}

func renderHistory(w io.Writer, p models.Product, records []models.HistoryRecord) {
	fmt.Fprintf(w, "Inventory history: %s\n", p.Name)
	if len(records) == 0 {
		fmt.Fprintln(w, flows.MsgHistoryEmpty)
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tCHANGE\tOLD\tNEW")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.ChangeDate.In(time.Local).Format(historyTimeLayout),
			r.Kind().Label(),
			numbers.Sprintf("%d", r.OldQuantity),
			numbers.Sprintf("%d", r.NewQuantity))
	}
	tw.Flush()
}

func renderSummary(w io.Writer, s models.ImportSummary) {
	if s.HasProblems() {
		fmt.Fprintln(w, "Import completed with some issues")
	} else {
		fmt.Fprintln(w, "Import completed successfully!")
	}
	fmt.Fprintf(w, "Total: %d  Added: %d  Skipped: %d\n", s.Total, s.Added, s.Skipped)
	if len(s.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range s.Errors {
			fmt.Fprintln(w, "  -", e)
		}
	}
}

// renderFormErrors prints the general message first, then field messages
// in form order.
func renderFormErrors(w io.Writer, errs flows.FormErrors) {
	if msg := errs.General(); msg != "" {
		fmt.Fprintln(w, msg)
	}
	for _, f := range models.Fields {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(w, "  %s: %s\n", fieldLabel(f), msg)
		}
	}

	var extra []string
	for k := range errs {
		if k != flows.GeneralKey && !slices.Contains(models.Fields, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		fmt.Fprintf(w, "  %s: %s\n", k, errs[k])
	}
}
