package models

import (
	"bytes"
	"encoding/json"
)

// ActionResult is the {data} | {error} envelope every data-service action answers with.
type ActionResult struct {
	Data  any          `json:"data,omitempty"`
	Error *ActionError `json:"error,omitempty"`
}

func (r ActionResult) OK() bool { return r.Error == nil }

// ActionError carries the failure shapes seen from actions: a message list,
// a field map or a bare string.
type ActionError struct {
	Message []string          `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Failure(msgs ...string) ActionResult {
	return ActionResult{Error: &ActionError{Message: msgs}}
}

func FieldFailure(fields map[string]string) ActionResult {
	return ActionResult{Error: &ActionError{Fields: fields}}
}

func Success(data any) ActionResult {
	return ActionResult{Data: data}
}

// UnmarshalJSON accepts "text", {"message":"text"}, {"message":[...]} and
// {"fields":{...}} as well as a bare field map.
func (e *ActionError) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "" {
			e.Message = []string{s}
		}
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if raw, ok := probe["message"]; ok {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			e.Message = list
		} else {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			if s != "" {
				e.Message = []string{s}
			}
		}
	}
	if raw, ok := probe["fields"]; ok {
		return json.Unmarshal(raw, &e.Fields)
	}
	if _, ok := probe["message"]; ok {
		return nil
	}
	fields := map[string]string{}
	for k, raw := range probe {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			fields[k] = s
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
	}
	return nil
}
