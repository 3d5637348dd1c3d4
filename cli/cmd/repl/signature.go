package repl

import (
	"strings"
	"unicode/utf8"
)

// functionCall represents a detected call in the input.
type functionCall struct {
	name     string // callee name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside the argument list
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a call's argument list. Parentheses, brackets, sequence brackets and text
// literals nest, so a comma inside any of them does not start a new argument.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Scan backward from the cursor to the unmatched '(' of the call.
	depth := 0
	open := -1

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		if inText(input, i) {
			continue
		}

		switch {
		case input[i] == ')' || input[i] == ']' || strings.HasPrefix(input[i:], "*>"):
			depth++
		case input[i] == '(' && depth == 0:
			open = i
		case input[i] == '[' || strings.HasPrefix(input[i:], "<*"):
			if depth == 0 {
				return functionCall{}
			}

			depth--
		case input[i] == '(':
			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	name, _, _ := wordBounds(input[:open], open)
	if name == "" {
		return functionCall{}
	}

	// Count commas at depth 0 in the argument list.
	argIndex := 0
	depth = 0

	for i := open + 1; i < cursor; {
		r, size := utf8.DecodeRuneInString(input[i:])

		if !inText(input, i) {
			switch {
			case r == '(' || r == '[' || strings.HasPrefix(input[i:], "<*"):
				depth++
			case r == ')' || r == ']' || strings.HasPrefix(input[i:], "*>"):
				depth--
			case r == ',' && depth == 0:
				argIndex++
			}
		}

		i += size
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// renderSignatureHint renders a signature such as "proc swap(=>a, =>b)" with
// the parameter at index current highlighted.
func renderSignatureHint(signature string, params []string, current int) string {
	head, _, ok := strings.Cut(signature, "(")
	if !ok || !strings.HasSuffix(signature, ")") {
		return hintStyle.Render(signature)
	}

	parts := make([]string, len(params))
	for i, p := range params {
		style := hintStyle
		if i == current {
			style = currentParamStyle
		}

		parts[i] = style.Render(p)
	}

	return signatureNameStyle.Render(head) +
		hintStyle.Render("(") +
		strings.Join(parts, hintStyle.Render(", ")) +
		hintStyle.Render(")")
}
