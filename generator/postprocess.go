package generator

import "strings"

// PostProcess trims the raw reply into a Report. A blank reply is an
// EmptyResponseError even when the client did not flag it.
func PostProcess(id, raw string, fields DefectFields) (Report, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Report{}, &EmptyResponseError{}
	}
	return Report{
		ID:     id,
		Fields: fields,
		Text:   text,
	}, nil
}
