package mip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LP serializes the model in CPLEX LP format, the input format shared by the
// cbc and highs binaries. Column order fixes the variable order, so the output
// is deterministic for a given model.
func (m *Model) LP() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\\ %s\n", m.name)

	if m.hasObjective && m.sense == Maximize {
		builder.WriteString("Maximize\n")
	} else {
		builder.WriteString("Minimize\n")
	}
	builder.WriteString("obj:")
	if m.hasObjective && m.objective.Len() > 0 {
		builder.WriteString(" ")
		m.writeTerms(&builder, m.objective)
	}
	builder.WriteString("\n")

	builder.WriteString("Subject To\n")
	for i, c := range m.constraints {
		fmt.Fprintf(&builder, "%s: ", lpName(c.Name, i))
		if c.Expr.Len() == 0 {
			// A row needs at least one column to stay parseable; a zero
			// coefficient keeps the relation's meaning.
			fmt.Fprintf(&builder, "0 %s", m.cols[0])
		} else {
			m.writeTerms(&builder, c.Expr)
		}
		fmt.Fprintf(&builder, " %s %s\n", c.Rel, formatCoeff(c.RHS))
	}

	builder.WriteString("Binaries\n")
	for _, col := range m.cols {
		fmt.Fprintf(&builder, "%s\n", col)
	}
	builder.WriteString("End\n")
	return builder.String()
}

func (m *Model) writeTerms(builder *strings.Builder, expr LinearExpr) {
	for i, t := range expr.terms {
		switch {
		case i == 0 && t.Coeff < 0:
			builder.WriteString("- ")
		case i > 0 && t.Coeff < 0:
			builder.WriteString(" - ")
		case i > 0:
			builder.WriteString(" + ")
		}
		fmt.Fprintf(builder, "%s %s", formatCoeff(math.Abs(t.Coeff)), m.cols[t.Var])
	}
}

func formatCoeff(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// lpName makes a row name safe for the LP format: word characters only,
// starting with a letter. Empty or fully stripped names fall back to the row
// position.
func lpName(name string, position int) string {
	var builder strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}
	cleaned := builder.String()
	if cleaned == "" {
		return fmt.Sprintf("c%d", position)
	}
	if first := cleaned[0]; first >= '0' && first <= '9' || first == '_' {
		cleaned = "c" + cleaned
	}
	return cleaned
}
