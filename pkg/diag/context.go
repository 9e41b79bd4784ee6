package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text in a source code. It is typically used for
// errors that can be associated with a part of the source code, like syntax
// errors and a traceback entry.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit. Tests replace them with
// plain markers.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Describe returns "name:line:col", where line and col are 1-based and col
// counts runes.
func (c *Context) Describe() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	line, col := c.position()
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the context, with the source position on the first line and the
// relevant source excerpt on the following ones, each preceded by indent.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Describe() + ":\n" + indent + c.relevantSource(indent)
}

// ShowCompact is like Show, but puts the source excerpt on the same line as
// the position.
func (c *Context) ShowCompact(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.Describe() + ": "
	return desc + c.relevantSource(indent+strings.Repeat(" ", len(desc)))
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) position() (line, col int) {
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = len([]rune(lastLine(before))) + 1
	return line, col
}

func (c *Context) relevantSource(indent string) string {
	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	var sb strings.Builder
	sb.WriteString(lastLine(before))

	// A trailing newline in the culprit is not shown; otherwise the rest of
	// the last line follows the culprit.
	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else {
		tail = firstLine(after)
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	sb.WriteString(tail)
	return sb.String()
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
