package evaltest

import (
	"errors"
	"fmt"
	"reflect"

	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/parse"
)

type errorMatcher interface{ matchError(error) bool }

// An errorMatcher for exceptions.
type exc struct {
	reason error
	stacks []string
}

func (e exc) Error() string {
	if len(e.stacks) == 0 {
		return fmt.Sprintf("exception with reason %v", e.reason)
	}
	return fmt.Sprintf("exception with reason %v and stacks %v", e.reason, e.stacks)
}

func (e exc) matchError(e2 error) bool {
	if e2, ok := e2.(*eval.Exception); ok {
		return matchErr(e.reason, e2.Reason) &&
			(len(e.stacks) == 0 ||
				reflect.DeepEqual(e.stacks, getStackTexts(e2)))
	}
	return false
}

func getStackTexts(e *eval.Exception) []string {
	texts := []string{}
	for _, ctx := range e.StackTrace {
		texts = append(texts, ctx.Source[ctx.From:ctx.To])
	}
	return texts
}

// AnyParseError is an error that can be passed to the Case.Throws to match any
// parse error.
var AnyParseError anyParseError

type anyParseError struct{}

func (anyParseError) Error() string           { return "any parse error" }
func (anyParseError) matchError(e error) bool { return parse.GetError(e) != nil }

// AnyError is an error that can be passed to the Case.Throws to match any
// non-nil error.
var AnyError anyError

type anyError struct{}

func (anyError) Error() string           { return "any error" }
func (anyError) matchError(e error) bool { return e != nil }

// ErrorWithType returns an error that can be passed to the Case.Throws to match
// any error with the same type as the argument.
func ErrorWithType(v error) error { return errWithType{v} }

// An errorMatcher for any error with the given type.
type errWithType struct{ v error }

func (e errWithType) Error() string { return fmt.Sprintf("error with type %T", e.v) }

func (e errWithType) matchError(e2 error) bool {
	return reflect.TypeOf(e.v) == reflect.TypeOf(e2)
}

// ErrorWithMessage returns an error that can be passed to Case.Throws to match
// any error with the given message.
func ErrorWithMessage(msg string) error { return errWithMessage{msg} }

// An errorMatcher for any error with the given message.
type errWithMessage struct{ msg string }

func (e errWithMessage) Error() string { return "error with message " + e.msg }

func (e errWithMessage) matchError(e2 error) bool {
	return e2 != nil && e.msg == e2.Error()
}

// ErrorIs returns an error that can be passed to Case.Throws to match any
// error for which errors.Is(err, target) holds.
func ErrorIs(target error) error { return errIs{target} }

type errIs struct{ target error }

func (e errIs) Error() string { return fmt.Sprintf("error wrapping %v", e.target) }

func (e errIs) matchError(e2 error) bool { return errors.Is(e2, e.target) }
