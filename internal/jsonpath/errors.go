package jsonpath

import "fmt"

// ParseError reports where and why a JSONPath expression failed to parse.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonpath: %d:%d: %s", e.Line, e.Column, e.Message)
}
