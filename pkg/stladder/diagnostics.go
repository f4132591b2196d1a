package stladder

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON renders a Result's diagnostics as a JSON array of objects with
// message/line/column/severity/code/stage fields, for tools that want to
// post-process findings without linking the compiler.
func (r *Result) ToJSON() (string, error) {
	type entry struct {
		Stage    string `json:"stage"`
		Message  string `json:"message"`
		Line     int    `json:"line"`
		Column   int    `json:"column"`
		Severity string `json:"severity"`
		Code     string `json:"code"`
	}
	var entries []entry
	for _, e := range r.Errors {
		entries = append(entries, entry{"validating", e.Message, e.Line, e.Column, e.Severity.String(), e.Code})
	}
	for _, w := range r.Warnings {
		entries = append(entries, entry{"validating", w.Message, w.Line, w.Column, w.Severity.String(), w.Code})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SuppressCodes marks every diagnostic whose "code" field matches one of
// codes as suppressed (rather than deleting it, so the original report
// order and count survive round-tripping).
func SuppressCodes(diagnosticsJSON string, codes []string) (string, error) {
	doc := diagnosticsJSON
	for i, res := range gjson.Parse(doc).Array() {
		code := res.Get("code").String()
		if !containsCode(codes, code) {
			continue
		}
		var err error
		doc, err = sjson.Set(doc, fmt.Sprintf("%d.suppressed", i), true)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// ActiveDiagnostics returns only the entries of diagnosticsJSON that
// SuppressCodes has not marked suppressed.
func ActiveDiagnostics(diagnosticsJSON string) []gjson.Result {
	var active []gjson.Result
	for _, res := range gjson.Parse(diagnosticsJSON).Array() {
		if !res.Get("suppressed").Bool() {
			active = append(active, res)
		}
	}
	return active
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
