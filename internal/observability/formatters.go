// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCard outputs a human-readable summary of an equipment card.
func (p *Printer) PrintCard(card *types.EquipmentCard) {
	if card == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tag:      %s\n", card.Tag))
	sb.WriteString(fmt.Sprintf("Class:    %s\n", card.ComponentClass))
	if card.DisplayName != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", card.DisplayName))
	}
	if card.Facility != "" {
		sb.WriteString(fmt.Sprintf("Facility: %s\n", card.Facility))
	}
	if card.Metadata.ValidationScore > 0 {
		sb.WriteString(fmt.Sprintf("Score:    %d/100\n", card.Metadata.ValidationScore))
	}

	if len(card.Specifications) > 0 {
		sb.WriteString("\nSpecifications:\n")
		names := make([]string, 0, len(card.Specifications))
		for name := range card.Specifications {
			names = append(names, name)
		}
		sort.Strings(names)

		count := min(len(names), maxItemsToShow)
		for _, name := range names[:count] {
			spec := card.Specifications[name]
			sb.WriteString(fmt.Sprintf("  • %s: %v %s\n", name, spec.Value, spec.Unit))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	if len(card.Manufacturers) > 0 {
		sb.WriteString(fmt.Sprintf("\nManufacturers: %s\n", strings.Join(card.Manufacturers, ", ")))
	}
	if len(card.Standards) > 0 {
		sb.WriteString(fmt.Sprintf("Standards:     %s\n", strings.Join(card.Standards, ", ")))
	}

	p.printBox("EQUIPMENT CARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRun outputs the stage progression and counters of a pipeline run.
func (p *Printer) PrintRun(run *types.PipelineRun) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Class:    %s x%d\n", run.EquipmentClass, run.Quantity))
	sb.WriteString(fmt.Sprintf("Facility: %s\n", run.Facility))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", run.Status))
	sb.WriteString("\nStages:\n")
	for _, stage := range run.Stages {
		marker := " "
		switch stage.Status {
		case types.RunCompleted:
			marker = "✓"
		case types.RunFailed:
			marker = "✗"
		case types.RunRunning:
			marker = "→"
		}
		sb.WriteString(fmt.Sprintf("  %s %-10s %s\n", marker, stage.Name, stage.Status))
	}

	r := run.Results
	sb.WriteString(fmt.Sprintf("\nGenerated: %d  Validated: %d  Stored: %d  Skipped: %d\n",
		r.Generated, r.Validated, r.Stored, r.DuplicatesSkipped))
	if r.Stored > 0 {
		sb.WriteString(fmt.Sprintf("Average score: %d/100\n", r.AverageScore))
	}

	p.printBox("PIPELINE RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConsultation outputs per-expert consultation results.
func (p *Printer) PrintConsultation(results []types.ExpertConsultationResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for i, result := range results {
		if result.Failed() {
			sb.WriteString(fmt.Sprintf("✗ %s (failed: %s)\n", result.Persona, result.Err))
		} else {
			sb.WriteString(fmt.Sprintf("✓ %s (%dms)\n", result.Persona, result.ElapsedMs))
			preview := result.Content
			if len(preview) > 120 {
				preview = preview[:117] + "..."
			}
			for _, line := range strings.Split(preview, "\n") {
				sb.WriteString(fmt.Sprintf("    %s\n", line))
			}
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXPERT CONSULTATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResearchProfile outputs a summary of a synthesised research profile.
func (p *Printer) PrintResearchProfile(profile *types.ResearchProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Class:    %s\n", profile.EquipmentClass))
	if profile.ComponentClassURI != "" {
		sb.WriteString(fmt.Sprintf("RDL URI:  %s\n", profile.ComponentClassURI))
	}
	if profile.TagPrefix != "" {
		sb.WriteString(fmt.Sprintf("Prefix:   %s\n", profile.TagPrefix))
	}
	sb.WriteString(fmt.Sprintf("Specs:    %d  Nozzles: %d\n", len(profile.Specifications), len(profile.Nozzles)))
	if len(profile.Standards) > 0 {
		sb.WriteString(fmt.Sprintf("Standards: %s\n", strings.Join(profile.Standards, ", ")))
	}
	if len(profile.Manufacturers) > 0 {
		count := min(len(profile.Manufacturers), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Vendors:   %s\n", strings.Join(profile.Manufacturers[:count], ", ")))
	}

	p.printBox("RESEARCH PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}
