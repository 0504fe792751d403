package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/service"
)

// FormatStats renders dataset counts.
func FormatStats(st dataset.Stats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Concepts:  %d\n", st.Concepts))
	b.WriteString(fmt.Sprintf("  Clusters:  %d\n", st.Clusters))
	b.WriteString(fmt.Sprintf("  Templates: %d\n", st.Templates))
	if st.Lexemes > 0 {
		b.WriteString(fmt.Sprintf("  Lexemes:   %d\n", st.Lexemes))
	}
	if st.InvalidPatterns > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  %d lexicon pattern(s) failed to compile and are ignored", st.InvalidPatterns)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatCheckResult renders a dataset check for dir.
func FormatCheckResult(dir string, r *service.CheckResult) string {
	var b strings.Builder
	b.WriteString(Header("Dataset check"))
	b.WriteString("\n")
	b.WriteString(Dim("  " + dir))
	b.WriteString("\n\n")

	if r.OK() {
		b.WriteString(StyleGreen.Render("  ✔ valid"))
		b.WriteString("\n")
		b.WriteString(FormatStats(r.Stats))
		return b.String()
	}
	b.WriteString(StyleRed.Render(fmt.Sprintf("  ✖ %d problem(s)", len(r.Problems))))
	b.WriteString("\n")
	for _, p := range r.Problems {
		for _, line := range strings.Split(p, "\n") {
			b.WriteString(fmt.Sprintf("    %s\n", line))
		}
	}
	return b.String()
}

// FormatImport renders a completed import.
func FormatImport(imp *domain.DatasetImport) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Imported dataset %s", imp.ID)))
	b.WriteString("\n")
	b.WriteString(Dim("  from " + imp.Source))
	b.WriteString("\n")
	b.WriteString(FormatStats(dataset.Stats{
		Concepts:        imp.ConceptCount,
		Clusters:        imp.ClusterCount,
		Templates:       imp.TemplateCount,
		InvalidPatterns: imp.InvalidPatterns,
	}))
	return b.String()
}

// FormatImportHistory renders stored imports, newest first.
func FormatImportHistory(imports []*domain.DatasetImport) string {
	if len(imports) == 0 {
		return Dim("No dataset imports recorded.") + "\n"
	}
	rows := make([][]string, 0, len(imports))
	for i, imp := range imports {
		id := imp.ID
		if i == 0 {
			id = StyleGreen.Render(id + " (active)")
		}
		rows = append(rows, []string{
			id,
			imp.ImportedAt.Local().Format(time.DateTime),
			strconv.Itoa(imp.TemplateCount),
			strconv.Itoa(imp.InvalidPatterns),
			Dim(imp.Source),
		})
	}
	return Table{
		Headers:    []string{"ID", "Imported", "Templates", "Invalid", "Source"},
		Rows:       rows,
		RightAlign: map[int]bool{2: true, 3: true},
	}.Render()
}
