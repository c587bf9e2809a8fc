package logger

import "strings"

const (
	// DefaultFormat is the format an Appender starts with.
	DefaultFormat = "[%t][%l][%c] %m"

	// timeWidth is the minimum width of a rendered %t directive.
	timeWidth = 20
)

// An Entry carries what a format string's directives are substituted with.
//
// Time and Message are called only when the format string asks for them.
type Entry struct {
	Level   Level
	Context string
	Time    func() string
	Message func() string
}

func (e Entry) time() string {
	if e.Time == nil {
		return ""
	}

	return e.Time()
}

func (e Entry) message() string {
	if e.Message == nil {
		return ""
	}

	return e.Message()
}

// Render produces the text for e laid out by format.
//
// Literal characters are copied as is. A '%' followed by one of these characters is a directive:
//   - t: the time, left-padded with '0' to 20 characters; nothing when the time is empty
//   - l: the fixed-width name of the Level
//   - c: the context; nothing when the context is empty
//   - m: the message
//
// A '%' followed by any other character is copied with that character.
// A '%' ending the format is copied as is.
func Render(format string, e Entry) string {
	if format == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(format) + 64)

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}

		if i+1 == len(format) {
			b.WriteByte('%')
			break
		}

		i++
		switch format[i] {
		case 't':
			if t := e.time(); t != "" {
				if pad := timeWidth - len(t); pad > 0 {
					b.WriteString(strings.Repeat("0", pad))
				}
				b.WriteString(t)
			}
		case 'l':
			b.WriteString(e.Level.String())
		case 'c':
			b.WriteString(e.Context)
		case 'm':
			b.WriteString(e.message())
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}

	return b.String()
}
