package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one pretty handler. Styles are bound to a
// renderer for the handler's writer, so color is dropped when that writer
// cannot display it.
type palette struct {
	key, text, number, duration, clock lipgloss.Style
	yes, no, source, message           lipgloss.Style
	levels                             map[Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:      fg("8"),
		text:     fg("6"),
		number:   fg("3"),
		duration: fg("5"),
		clock:    fg("4"),
		yes:      fg("2"),
		no:       fg("1"),
		source:   fg("8").Italic(true),
		message:  r.NewStyle().Bold(true),
		levels: map[Level]lipgloss.Style{
			LevelTrace: fg("8"),
			LevelDebug: fg("5"),
			LevelInfo:  fg("2"),
			LevelWarn:  fg("3").Bold(true),
			LevelError: fg("1").Bold(true),
		},
	}
}

// level picks the style of the nearest defined level at or below l.
func (p *palette) level(l Level) lipgloss.Style {
	style := p.levels[LevelTrace]

	for _, def := range allLevels {
		if l >= def {
			style = p.levels[def]
		}
	}

	return style
}

// prettyHandler writes colorized records, either as one key=value line or,
// in JSON mode, as an indented object.
type prettyHandler struct {
	opts    slog.HandlerOptions
	mu      *sync.Mutex
	w       io.Writer
	palette *palette
	json    bool
	attrs   []slog.Attr
	groups  []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		opts:    *opts,
		mu:      &sync.Mutex{},
		w:       w,
		palette: newPalette(w),
		json:    json,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clone(h.attrs)

	for _, a := range attrs {
		c.attrs = append(c.attrs, qualify(h.groups, a))
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// field is one rendered key and value.
type field struct {
	key, value string
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []field

	builtin := func(a slog.Attr, style func(...string) string) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Equal(slog.Attr{}) {
			return
		}

		s := a.Value.Resolve().String()
		if h.json {
			s = strconv.Quote(s)
		}

		fields = append(fields, field{a.Key, style(s)})
	}

	if !r.Time.IsZero() {
		builtin(slog.Time(slog.TimeKey, r.Time), h.palette.clock.Render)
	}

	builtin(slog.Any(slog.LevelKey, r.Level), h.palette.level(Level(r.Level)).Render)

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			builtin(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)),
				h.palette.source.Render)
		}
	}

	builtin(slog.String(slog.MessageKey, r.Message), h.palette.message.Render)

	attrs := slices.Clone(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, qualify(h.groups, a))

		return true
	})

	for _, a := range attrs {
		fields = h.appendAttr(fields, "", a)
	}

	var buf bytes.Buffer

	if h.json {
		buf.WriteString("{\n")

		for i, f := range fields {
			fmt.Fprintf(&buf, "  %s: %s", h.palette.key.Render(strconv.Quote(f.key)), f.value)

			if i < len(fields)-1 {
				buf.WriteByte(',')
			}

			buf.WriteByte('\n')
		}

		buf.WriteString("}\n")
	} else {
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(h.palette.key.Render(f.key + "="))
			buf.WriteString(f.value)
		}

		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// qualify nests a inside the open groups.
func qualify(groups []string, a slog.Attr) slog.Attr {
	for i := len(groups) - 1; i >= 0; i-- {
		a = slog.Group(groups[i], a)
	}

	return a
}

// appendAttr flattens a into fields, joining group names with dots.
func (h *prettyHandler) appendAttr(fields []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key == "" {
			key = prefix
		}

		for _, ga := range a.Value.Group() {
			fields = h.appendAttr(fields, key, ga)
		}

		return fields
	}

	return append(fields, field{key, h.value(a.Value)})
}

func (h *prettyHandler) value(v slog.Value) string {
	p := h.palette

	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if h.json || s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		return p.text.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return p.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.duration.Render(v.Duration().String())

	case slog.KindTime:
		return p.clock.Render(v.Time().Format(time.RFC3339))

	default:
		s := fmt.Sprint(v.Any())
		if h.json {
			s = strconv.Quote(s)
		}

		return s
	}
}
