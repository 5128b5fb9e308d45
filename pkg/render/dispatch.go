package render

import (
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/payload"
	"github.com/arthur-debert/shine/pkg/style"
)

// DefaultTitle is used when a block is rendered without a title.
const DefaultTitle = "Data"

// Result describes what a render call drew.
type Result struct {
	Kind payload.Kind
	// Columns holds the table columns in display order.
	Columns []string
	// Rows is the number of table rows or list items drawn.
	Rows int
	// Hidden is the number of table rows left out by the row cap.
	Hidden int
	// Notice is the recovered input problem shown instead of the payload,
	// such as MALFORMED_INPUT or EMPTY_TABLE.
	Notice error
}

// Render picks a strategy from the shape of v and draws it:
//
//   - a mapping below the threshold becomes a key/value panel
//   - a larger mapping becomes a highlighted JSON block
//   - a sequence of mappings becomes a table
//   - any other sequence becomes a list
//   - a string starting with '{' or '[' is parsed as JSON first
//   - anything else is written as "<title>: <value>"
//
// The returned error is only set when writing to the sink fails.
func (r *Renderer) Render(v any, title string, opts ...CallOption) (Result, error) {
	cfg := r.callConfig(opts)

	kind, value, err := payload.Classify(v, cfg.threshold)
	r.logger.Debug().
		Str("kind", kind.String()).
		Str("title", title).
		Int("threshold", cfg.threshold).
		Msg("Dispatching payload")
	if err != nil {
		return r.malformed(err)
	}

	switch kind {
	case payload.KindKeyValue:
		return r.keyValue(value.(*payload.Map), title, cfg)
	case payload.KindStructured:
		return r.structured(value, title, cfg)
	case payload.KindTable:
		return r.table(value.([]any), title, cfg)
	case payload.KindList:
		return r.list(value.([]any), title, cfg)
	}

	return Result{Kind: payload.KindPlain}, r.plain(value, title)
}

func (r *Renderer) plain(v any, title string) error {
	if title == "" {
		title = DefaultTitle
	}
	if r.format == FormatJSON {
		return r.record(record{Kind: payload.KindPlain.String(), Title: title, Data: v})
	}
	return r.Info(fmt.Sprintf("%s: %s", title, payload.Stringify(v)))
}

// malformed shows a parse failure as an error notice.
func (r *Renderer) malformed(err error) (Result, error) {
	res := Result{Kind: payload.KindPlain, Notice: err}
	return res, r.notice(style.Error, "Invalid JSON string: "+reason(err), err)
}

// reason returns the underlying message of a coded error.
func reason(err error) string {
	var se *errors.ShineError
	if stderrors.As(err, &se) {
		if se.Wrapped != nil {
			return se.Wrapped.Error()
		}
		return se.Message
	}
	return err.Error()
}
