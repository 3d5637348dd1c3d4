package lang

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

// benchSource generates a program with count procedure declarations and
// calls.
func benchSource(count int) string {
	var sb strings.Builder

	for i := range count {
		fmt.Fprintf(&sb, "proc step%d(=>acc, n)\n", i)
		fmt.Fprintf(&sb, "  for i from 1 to n do acc := acc + <* i, %d *> od\n", i)
		sb.WriteString("end\n")
		fmt.Fprintf(&sb, "step%d(=>total, %d)\n", i, i%7)
	}

	return sb.String()
}

var benchSizes = []struct {
	name  string
	count int
}{
	{"small", 10},
	{"medium", 200},
	{"large", 2000},
}

func BenchmarkParseProgram(b *testing.B) {
	for _, size := range benchSizes {
		source := benchSource(size.count)

		b.Run(size.name, func(b *testing.B) {
			b.SetBytes(int64(len(source)))

			for b.Loop() {
				if _, err := ParseProgram(context.Background(), source); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseReader(b *testing.B) {
	source := benchSource(200)

	ClearCache()

	for b.Loop() {
		if _, err := ParseReader(context.Background(), strings.NewReader(source)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseString_Caching measures repeated parses of one source.
func BenchmarkParseString_Caching(b *testing.B) {
	source := benchSource(50)

	ClearCache()

	for b.Loop() {
		if _, err := ParseString(context.Background(), source); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	type formatFunc func(p *Program, buf *bytes.Buffer) error

	formats := []struct {
		name string
		fn   formatFunc
	}{
		{"native", func(p *Program, buf *bytes.Buffer) error {
			return p.Format(context.Background(), buf, 2)
		}},
		{"json", func(p *Program, buf *bytes.Buffer) error {
			return p.FormatJSON(context.Background(), buf, 2)
		}},
		{"yaml", func(p *Program, buf *bytes.Buffer) error {
			return p.FormatYAML(context.Background(), buf, 2)
		}},
	}

	prog, err := ParseProgram(context.Background(), benchSource(100))
	if err != nil {
		b.Fatal(err)
	}

	for _, f := range formats {
		b.Run(f.name, func(b *testing.B) {
			var buf bytes.Buffer

			for b.Loop() {
				buf.Reset()

				if err := f.fn(prog, &buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
