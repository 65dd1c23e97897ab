// ABOUTME: Tool outcome type: rendered text on success or an error message
// ABOUTME: Handlers return a Result instead of failing; the MCP adapter formats it

package tools

// Result is either Ok(text) or Err(err). Exactly one of Text and Err is meaningful.
type Result struct {
	Text string
	Err  error
}

// Ok wraps successful output.
func Ok(text string) Result { return Result{Text: text} }

// Err wraps a failure.
func Err(err error) Result { return Result{Err: err} }

// IsError reports whether the result is a failure.
func (r Result) IsError() bool { return r.Err != nil }

// Message returns the text for a success or the error message for a failure.
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Text
}
