package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/palette"
)

// Headers are the table column titles in display order.
var Headers = []string{"Type", "Name", "Size", "Modified_At", "Read_Only"}

const (
	colType = iota
	colName
	colSize
	colModified
	colReadOnly
)

func (f *formatter) formatTable(entries []entry.Entry) (string, error) {
	f.log.Debug("Formatting table output")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Kind.String(),
			e.Name,
			e.Size,
			e.Modified,
			strconv.FormatBool(e.ReadOnly),
		}
	}

	base := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if f.config.NoColor {
				return base
			}
			c, ok := cellColor(f.config.Palette, entries, row, col)
			if !ok {
				return base
			}
			return base.Foreground(lipgloss.Color(c.Hex()))
		})

	return t.String(), nil
}

// cellColor picks the color of one cell. A hidden row is recolored as a
// whole, overriding the name and edge column colors.
func cellColor(p palette.ColorConfig, entries []entry.Entry, row, col int) (palette.RGB, bool) {
	if row == table.HeaderRow {
		return p.TitleRow, true
	}
	if row < 0 || row >= len(entries) {
		return palette.RGB{}, false
	}

	e := entries[row]
	switch {
	case e.Hidden:
		return p.Hidden, true
	case col == colName && e.Executable:
		return p.Executable, true
	case col == colName && e.IsDir():
		return p.Directory, true
	case col == colType:
		return p.LeadingCol, true
	case col == colReadOnly:
		return p.TrailingCol, true
	}
	return palette.RGB{}, false
}
