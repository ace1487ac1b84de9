package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
)

// Overlay marks how far a conversation got. Steps before Current are
// styled as visited.
type Overlay struct {
	Current domain.Step
}

// GenerateMermaid produces a Mermaid flowchart of the screening script.
// Shapes follow the step's role:
//   - Call start and close: ((Circle))
//   - Question: [/Parallelogram/] labelled with the fields it collects
//
// Steps that repeat on an unclear answer get a dotted self loop.
func GenerateMermaid(job domain.JobContext, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	title := strings.ReplaceAll(job.Title, "\"", "'")
	fmt.Fprintf(&sb, "    call((\"%s\"))\n", title)
	fmt.Fprintf(&sb, "    call --> %s\n", domain.StepInterest)

	for step := domain.StepInterest; step <= domain.StepConfirmation; step++ {
		fields := strings.Join(dialogue.Fields(step), ", ")
		fmt.Fprintf(&sb, "    %s[/\"%s <br/> %s\"/]\n", step, step, fields)
		fmt.Fprintf(&sb, "    %s -- \"answered\" --> %s\n", step, step+1)
		if dialogue.Clarifies(step) {
			fmt.Fprintf(&sb, "    %s -. \"unclear\" .-> %s\n", step, step)
		}
	}
	closed := domain.StepConfirmation + 1
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", closed, closed)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := min(overlay.Current, closed)
		sb.WriteString("    class call visited;\n")
		for step := domain.StepInterest; step < current; step++ {
			fmt.Fprintf(&sb, "    class %s visited;\n", step)
		}
		fmt.Fprintf(&sb, "    class %s current;\n", current)
	}

	return sb.String()
}
