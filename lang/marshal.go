package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the program to a tree of native Go maps and slices. Every
// node becomes a map with a "node" key naming its kind and a "pos" key
// holding "line:column".
func (p *Program) ToMap() map[string]any {
	return map[string]any{
		"node":       "program",
		"statements": stmtsToNative(p.Stmts),
	}
}

func stmtsToNative(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = ToNative(s)
	}

	return out
}

func exprsToNative(xs []Expr) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = ToNative(x)
	}

	return out
}

func optional(m map[string]any, key string, n Node) {
	if n != nil {
		m[key] = ToNative(n)
	}
}

// ToNative converts one syntax tree node to its native Go form.
func ToNative(n Node) any {
	node := func(kind string) map[string]any {
		return map[string]any{"node": kind, "pos": n.Pos().String()}
	}

	switch x := n.(type) {
	case *IntegerLit:
		m := node("integer")
		m["value"] = x.Value

		return m
	case *RealLit:
		m := node("real")
		m["value"] = x.Value

		return m
	case *TextLit:
		m := node("text")
		m["value"] = x.Value

		return m
	case *LogicalLit:
		m := node("logical")
		m["value"] = x.Value

		return m
	case *EmptyLit:
		return node("empty")
	case *Ident:
		m := node("ident")
		m["name"] = x.Name

		return m
	case *Unary:
		m := node("unary")
		m["op"] = x.Op.Symbol()
		m["x"] = ToNative(x.X)

		return m
	case *Binary:
		m := node("binary")
		m["op"] = x.Op.Symbol()
		m["x"] = ToNative(x.X)
		m["y"] = ToNative(x.Y)

		return m
	case *Index:
		m := node("index")
		m["x"] = ToNative(x.X)
		m["index"] = ToNative(x.Index)

		return m
	case *Slice:
		m := node("slice")
		m["x"] = ToNative(x.X)
		optional(m, "from", x.Lo)
		optional(m, "to", x.Hi)

		return m
	case *Call:
		m := node("call")
		m["fn"] = ToNative(x.Fn)

		args := make([]any, len(x.Args))
		for i, a := range x.Args {
			args[i] = map[string]any{"inout": a.InOut, "x": ToNative(a.X)}
		}

		m["args"] = args

		return m
	case *SeqLit:
		m := node("sequence")
		m["elems"] = exprsToNative(x.Elems)

		return m
	case *SubLit:
		return subToNative(x.Sub)
	case *SubDecl:
		return subToNative(x.Sub)
	case *Assign:
		m := node("assign")
		m["target"] = ToNative(x.Target)
		m["value"] = ToNative(x.Value)

		return m
	case *CallStmt:
		return ToNative(x.Call)
	case *If:
		m := node("if")
		m["cond"] = ToNative(x.Cond)
		m["then"] = stmtsToNative(x.Then)

		if x.Else != nil {
			m["else"] = stmtsToNative(x.Else)
		}

		return m
	case *Case:
		m := node("case")
		optional(m, "subject", x.Subject)

		whens := make([]any, len(x.Whens))
		for i, w := range x.Whens {
			whens[i] = map[string]any{
				"pos":    w.Pos().String(),
				"values": exprsToNative(w.Values),
				"body":   stmtsToNative(w.Body),
			}
		}

		m["whens"] = whens

		if x.Else != nil {
			m["else"] = stmtsToNative(x.Else)
		}

		return m
	case *Loop:
		m := node("loop")

		if f := x.For; f != nil {
			fm := map[string]any{"var": f.Var.Name}
			optional(fm, "from", f.From)
			optional(fm, "to", f.To)
			optional(fm, "step", f.Step)
			m["for"] = fm
		}

		optional(m, "repeat", x.Repeat)
		optional(m, "while", x.While)
		m["body"] = stmtsToNative(x.Body)

		return m
	case *Output:
		m := node("output")
		m["items"] = exprsToNative(x.Items)
		m["newline"] = !x.NoNewline

		return m
	case *Input:
		m := node("input")
		m["targets"] = exprsToNative(x.Targets)
		m["text"] = x.Text

		return m
	case *Exit:
		return node("exit")
	case *Return:
		m := node("return")
		optional(m, "value", x.Value)

		return m
	default:
		return nil
	}
}

func subToNative(s *Subroutine) map[string]any {
	params := make([]any, len(s.Params))
	for i, p := range s.Params {
		params[i] = map[string]any{"name": p.Name, "inout": p.InOut}
	}

	m := map[string]any{
		"node":   s.Kind.Keyword(),
		"pos":    s.Pos().String(),
		"params": params,
		"body":   stmtsToNative(s.Body),
	}

	if s.Name != "" {
		m["name"] = s.Name
	}

	if len(s.Extern) > 0 {
		m["extern"] = s.Extern
	}

	return m
}
