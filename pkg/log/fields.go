package log

import "fmt"

const badKey = "!BADKEY"

type field struct {
	key   string
	value any
}

// normalizeFields turns the variadic key-value list accepted by Logger into
// pairs. A leading error with an odd number of fields is recorded under
// ErrAttrKey, mirroring the Error(msg, err, k, v...) calling convention.
func normalizeFields(fields []any) []field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]field, 0, len(fields)/2+1)
	if err, ok := fields[0].(error); ok && len(fields)%2 == 1 {
		out = append(out, field{key: ErrAttrKey, value: err})
		fields = fields[1:]
	}
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			out = append(out, field{key: badKey, value: fields[i]})
			break
		}
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		out = append(out, field{key: key, value: fields[i+1]})
	}
	return out
}
