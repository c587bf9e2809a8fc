package logger

import (
	"fmt"
	"strings"
)

// A TailPolicy decides what BuildMessage does with a template
// once every argument has been consumed but placeholders remain.
type TailPolicy int

const (
	// CopyTail copies the rest of the template, unmatched placeholders included, verbatim.
	CopyTail TailPolicy = iota

	// TruncateTail drops everything after the last consumed argument.
	TruncateTail
)

func (p TailPolicy) String() string {
	switch p {
	case CopyTail:
		return "copy"
	case TruncateTail:
		return "truncate"
	default:
		return "unknown"
	}
}

// BuildMessage renders template against args.
//
// Each '%' in template is replaced by the text of the next unconsumed argument.
// Arguments are rendered with [fmt.Sprint], so a [fmt.Stringer] or error uses its own text.
// Arguments left over when template is exhausted are discarded.
// Without arguments, template is returned as is.
// Placeholders left over when args is exhausted are handled according to policy.
func BuildMessage(policy TailPolicy, template string, args ...any) string {
	if len(args) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template) + 16*len(args))

	// mark is the length of b right after the last substituted argument.
	mark := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}

		if len(args) == 0 {
			if policy == TruncateTail {
				return b.String()[:mark]
			}

			b.WriteString(template[i:])
			return b.String()
		}

		b.WriteString(text(args[0]))
		args = args[1:]
		mark = b.Len()
	}

	return b.String()
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
