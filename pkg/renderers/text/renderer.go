// Package text renders snapshots as plain (optionally coloured) terminal
// output: the banner, the numbered error list and a table of control states.
package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

type Option func(*Renderer)

// WithColorOutput styles the output for the terminal behind w. Without it the
// renderer emits plain text.
func WithColorOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.lip = lipgloss.NewRenderer(w)
		}
	}
}

// WithoutTable drops the control state table, leaving banner and errors.
func WithoutTable() Option {
	return func(r *Renderer) {
		r.table = false
	}
}

type Renderer struct {
	lip   *lipgloss.Renderer
	table bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{lip: lipgloss.NewRenderer(io.Discard), table: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, snap render.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.lip == nil {
		return nil, errors.New("text renderer: renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := r.styles()

	var b strings.Builder
	title := snap.FormID
	if title == "" {
		title = "form"
	}
	fmt.Fprintf(&b, "%s %s\n", st.title.Render(title), st.muted.Render("("+string(snap.Phase)+")"))

	if snap.Banner != nil {
		if snap.Banner.Kind == render.BannerSuccess {
			b.WriteString(st.success.Render("✓ "+snap.Banner.Text) + "\n")
		} else {
			b.WriteString(st.failure.Render("⚠ "+snap.Banner.Text) + "\n")
		}
	}

	if len(snap.Errors) > 0 {
		b.WriteString("\n" + st.heading.Render(render.ErrorsListHeader) + "\n")
		for i, message := range snap.Errors {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, message)
		}
	}

	if r.table && !options.Fragment && len(snap.Controls) > 0 {
		b.WriteString("\n" + r.controlTable(snap.Controls, st) + "\n")
	}

	if snap.Record != nil {
		b.WriteString("\n" + st.muted.Render("record "+snap.Record.ID) + "\n")
		b.WriteString(snap.Record.Pretty())
	}
	if snap.ResetAfter > 0 {
		fmt.Fprintf(&b, "%s\n", st.muted.Render(fmt.Sprintf("form resets in %s", snap.ResetAfter)))
	}
	return []byte(b.String()), nil
}

func (r *Renderer) controlTable(controls []render.ControlState, st styles) string {
	rows := make([][]string, 0, len(controls))
	for _, c := range controls {
		rows = append(rows, []string{c.Name, c.Validity.String(), displayValue(c), c.Inline})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.muted).
		Headers("CONTROL", "STATE", "VALUE", "MESSAGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := r.lip.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			if col == 1 && row >= 0 && row < len(controls) {
				switch controls[row].Validity {
				case model.Invalid:
					return cell.Inherit(st.failure)
				case model.Valid:
					return cell.Inherit(st.success)
				}
			}
			return cell
		}).
		String()
}

func displayValue(c render.ControlState) string {
	switch {
	case c.Field != nil:
		return c.Field.Value
	case c.Group != nil:
		return strings.Join(c.Group.Values(), ", ")
	case c.Dropdown != nil:
		return c.Dropdown.Value
	default:
		return ""
	}
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func (r *Renderer) styles() styles {
	return styles{
		title:   r.lip.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		heading: r.lip.NewStyle().Bold(true),
		muted:   r.lip.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		success: r.lip.NewStyle().Foreground(lipgloss.Color("#10B981")),
		failure: r.lip.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
	}
}
