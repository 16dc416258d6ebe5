package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"vaultkeeper/internal/app/viewmodel"
)

// Table writes rows aligned in columns.
func Table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Status renders a save status with a color.
func Status(s viewmodel.SaveStatus) string {
	switch s {
	case viewmodel.Saved:
		return color.GreenString(s.String())
	case viewmodel.Failed:
		return color.RedString(s.String())
	case viewmodel.Saving:
		return color.YellowString(s.String())
	default:
		return s.String()
	}
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.GreenString("✓ "+format, args...))
}

func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.YellowString("⚠ "+format, args...))
}

func Time(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// Deref returns the pointed string or "-".
func Deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
