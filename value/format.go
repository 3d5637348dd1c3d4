package value

// Format renders v for output. Text renders as its raw characters; every
// other value renders its literal form, so Format(Text("a")) is a but
// Format(Sequence{Text("a")}) is <* "a" *>.
func Format(v Value) string {
	if t, isText := v.(Text); isText {
		return string(t)
	}

	if v == nil {
		return Empty{}.String()
	}

	return v.String()
}
