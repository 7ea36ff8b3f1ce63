package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/riverlight/internal/field"
)

// WriteText prints the overlays, the river ends and the grid with every label
// right-aligned to four columns.
func WriteText(w io.Writer, f *field.Field) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Mirrors:  %s\n", joinOverlays(f.Mirrors()))
	fmt.Fprintf(&b, "Rotators: %s\n", joinOverlays(f.Rotators()))
	fmt.Fprintf(&b, "Source:   %s\n", f.Source())
	fmt.Fprintf(&b, "Mouth:    %s\n", f.Mouth())

	for _, row := range f.Rows() {
		for _, label := range row {
			fmt.Fprintf(&b, "%4s", label)
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write field: %w", err)
	}
	return nil
}

func joinOverlays[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}
