package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/erikmannerfelt/manus/internal/ctxlog"
	"github.com/erikmannerfelt/manus/internal/helpers"
	"github.com/erikmannerfelt/manus/internal/value"
)

// Renderer substitutes placeholders against one resolved tree. It only
// reads the tree, so a single Renderer may serve concurrent render passes.
type Renderer struct {
	store *value.Store
	lib   *helpers.Library
}

// New builds a renderer over a resolved tree and its helper library.
func New(store *value.Store, lib *helpers.Library) *Renderer {
	return &Renderer{store: store, lib: lib}
}

// Error reports a failed placeholder with its position in the template.
type Error struct {
	Line    int // 1-based
	Column  int // 1-based
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("L%dC%d: %s", e.Line, e.Column, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RenderLines renders every line of a template.
func (r *Renderer) RenderLines(ctx context.Context, lines []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	rendered := make([]string, len(lines))
	for i, line := range lines {
		out, err := r.renderLine(line, i+1)
		if err != nil {
			return nil, err
		}
		rendered[i] = out
	}

	logger.Debug("Template rendered.", "line_count", len(lines))
	return rendered, nil
}

// renderLine substitutes every {{...}} placeholder in one line.
func (r *Renderer) renderLine(line string, lineNo int) (string, error) {
	var b strings.Builder
	rest := line
	offset := 0
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		closing := strings.Index(rest[open:], "}}")
		if closing < 0 {
			return "", &Error{Line: lineNo, Column: offset + open + 1, Message: "unclosed placeholder"}
		}
		closing += open

		b.WriteString(rest[:open])
		inner := rest[open+2 : closing]

		result, err := r.evalPlaceholder(inner)
		if err != nil {
			return "", &Error{Line: lineNo, Column: offset + open + 1, Message: err.Error(), Err: err}
		}
		text, err := r.stringify(result)
		if err != nil {
			return "", &Error{Line: lineNo, Column: offset + open + 1, Message: err.Error(), Err: err}
		}
		b.WriteString(text)

		offset += closing + 2
		rest = rest[closing+2:]
	}
}

// evalPlaceholder parses and evaluates the contents of one placeholder.
func (r *Renderer) evalPlaceholder(inner string) (any, error) {
	fields, err := splitFields(inner)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty placeholder")
	}
	return r.evalFields(fields)
}

// evalFields evaluates a helper call or a bare lookup from parsed fields.
func (r *Renderer) evalFields(fields []field) (any, error) {
	head := fields[0]
	if head.kind == fieldWord && r.lib.Has(head.text) && len(fields) > 1 {
		args := make([]helpers.Arg, 0, len(fields)-1)
		for _, f := range fields[1:] {
			arg, err := r.evalField(f)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return r.lib.Call(head.text, args)
	}
	if len(fields) > 1 {
		return nil, fmt.Errorf("%q is not a helper", head.text)
	}
	return r.evalField(head)
}

// evalField evaluates a single argument position: a literal, a lookup or a
// nested subexpression (innermost first).
func (r *Renderer) evalField(f field) (any, error) {
	switch f.kind {
	case fieldNumber:
		return f.num, nil
	case fieldString:
		return f.text, nil
	case fieldSubexpr:
		sub, err := splitFields(f.text)
		if err != nil {
			return nil, err
		}
		if len(sub) == 0 {
			return nil, fmt.Errorf("empty subexpression")
		}
		return r.evalFields(sub)
	case fieldWord:
		path := value.ParsePath(f.text)
		if !r.store.Has(path) {
			return nil, fmt.Errorf("key %q not found", f.text)
		}
		return path, nil
	default:
		return nil, fmt.Errorf("unhandled field kind")
	}
}

// stringify renders a helper result or lookup for substitution.
func (r *Renderer) stringify(result any) (string, error) {
	switch v := result.(type) {
	case string:
		return v, nil
	case float64:
		return value.FormatNumber(v), nil
	case value.Path:
		stored, ok := r.store.Get(v)
		if !ok {
			return "", fmt.Errorf("key %q not found", v.String())
		}
		text, err := value.FormatScalar(stored)
		if err != nil {
			return "", fmt.Errorf("key %q: %w", v.String(), err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("cannot render a %T", result)
	}
}
