// Package batch evaluates many panels in one call.
package batch

import (
	"errors"
	"fmt"

	"github.com/siknue/gpg-back/internal/calc/stress"
)

const MaxItems = 500

var (
	ErrEmpty   = errors.New("no items")
	ErrTooMany = fmt.Errorf("batch exceeds %d items", MaxItems)
)

type Input struct {
	Items []stress.Panel `json:"items"`
}

// Result lines up one response per input item.
type Result struct {
	Count  int               `json:"count"`
	Failed int               `json:"failed"`
	Items  []stress.Response `json:"items"`
}

// Evaluate never stops at a failing item; its error lands in that item's
// response.
func Evaluate(calc stress.Calculator, items []stress.Panel) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrEmpty
	}
	if len(items) > MaxItems {
		return Result{}, ErrTooMany
	}
	out := Result{Count: len(items), Items: make([]stress.Response, 0, len(items))}
	for _, item := range items {
		var resp stress.Response
		req, err := item.Request()
		if err != nil {
			resp = stress.Response{Error: err.Error()}
		} else {
			resp = calc.Evaluate(req)
		}
		if !resp.OK() {
			out.Failed++
		}
		out.Items = append(out.Items, resp)
	}
	return out, nil
}
