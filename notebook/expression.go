package notebook

import (
	"log/slog"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/hrygo/notekeeper/store"
)

// Expression is a compiled boolean filter over a note, e.g.
//
//	"ideas" in tags && title.contains("Idea")
//
// Available variables: id (int), title (string), content (string), tags (list of string).
type Expression struct {
	source  string
	program cel.Program
}

var noteEnv, noteEnvErr = cel.NewEnv(
	cel.Variable("id", cel.IntType),
	cel.Variable("title", cel.StringType),
	cel.Variable("content", cel.StringType),
	cel.Variable("tags", cel.ListType(cel.StringType)),
)

// CompileExpression parses and type-checks a filter expression.
func CompileExpression(source string) (*Expression, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("empty filter expression")
	}
	if noteEnvErr != nil {
		return nil, errors.Wrap(noteEnvErr, "failed to create CEL environment")
	}

	ast, issues := noteEnv.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(issues.Err(), "invalid filter expression: %s", source)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Errorf("filter expression must be boolean, got %s", ast.OutputType())
	}

	program, err := noteEnv.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build filter program: %s", source)
	}
	return &Expression{source: source, program: program}, nil
}

func (e *Expression) String() string {
	return e.source
}

// Match evaluates the expression against a note. Evaluation errors count as no match.
func (e *Expression) Match(note *store.Note) bool {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	out, _, err := e.program.Eval(map[string]any{
		"id":      int64(note.ID),
		"title":   note.Title,
		"content": note.Content,
		"tags":    tags,
	})
	if err != nil {
		slog.Debug("filter expression evaluation failed", "expression", e.source, "note_id", note.ID, "error", err)
		return false
	}
	matched, ok := out.Value().(bool)
	return ok && matched
}

// FilterExpression keeps, in order, the notes matching expr.
func FilterExpression(notes []*store.Note, expr *Expression) []*store.Note {
	filtered := make([]*store.Note, 0, len(notes))
	for _, note := range notes {
		if expr.Match(note) {
			filtered = append(filtered, note)
		}
	}
	return filtered
}
