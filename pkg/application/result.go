package application

// Result is the outcome envelope returned by every dispatch.
type Result struct {
	Success bool
	Data    any
	Error   error
}

// Ok builds a successful result carrying an optional payload.
func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failed result carrying the boundary error.
func Fail(err error) Result {
	return Result{Success: false, Error: err}
}
