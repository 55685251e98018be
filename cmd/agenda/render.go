package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/controller"
)

const emptyList = "Nenhum contato encontrado."

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	favStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

var tableHeader = []string{"ID", "NOME", "CELULAR", "TELEFONE", "EMAIL", "FAV"}

func renderTable(w io.Writer, list []contact.Contact, styled bool) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, emptyList)
		return
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		fav := ""
		if c.Favorite {
			fav = "★"
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			controller.FormatMobile(c.Mobile),
			controller.FormatLandline(c.Landline),
			c.Email,
			fav,
		})
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	writeRow(w, tableHeader, widths, func(s string) string {
		if styled {
			return headerStyle.Render(s)
		}
		return s
	})
	for _, r := range rows {
		writeRow(w, r, widths, func(s string) string {
			if styled && s == "★" {
				return favStyle.Render(s)
			}
			return s
		})
	}
}

func writeRow(w io.Writer, cells []string, widths []int, style func(string) string) {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(style(cell))
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func renderDetail(w io.Writer, id int64, v controller.FormView, styled bool) {
	label := func(s string) string {
		if styled {
			return labelStyle.Render(s)
		}
		return s
	}
	yesNo := func(b bool) string {
		if b {
			return "sim"
		}
		return "não"
	}
	lines := [][2]string{
		{"ID", strconv.FormatInt(id, 10)},
		{contact.Label(contact.FieldName), v.Name},
		{contact.Label(contact.FieldMobile), v.Mobile},
		{contact.Label(contact.FieldLandline), v.Landline},
		{contact.Label(contact.FieldEmail), v.Email},
		{contact.Label(contact.FieldFavorite), yesNo(v.Favorite)},
		{contact.Label(contact.FieldActive), yesNo(v.Active)},
	}
	for _, l := range lines {
		_, _ = fmt.Fprintf(w, "%s %s\n", label(fmt.Sprintf("%-9s", l[0]+":")), l[1])
	}
}
