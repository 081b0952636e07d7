package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestActionErrorShapes(t *testing.T) {
	cases := map[string]ActionError{
		`"Server busy"`:          {Message: []string{"Server busy"}},
		`{"message":"Sold out"}`: {Message: []string{"Sold out"}},
		`{"message":["Duplicate booking","again"]}`: {
			Message: []string{"Duplicate booking", "again"},
		},
		`{"fields":{"email":"Email already used"}}`: {
			Fields: map[string]string{"email": "Email already used"},
		},
		`{"phone":"Invalid phone","rooms":"Too many"}`: {
			Fields: map[string]string{"phone": "Invalid phone", "rooms": "Too many"},
		},
	}
	for in, want := range cases {
		var got ActionError
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got %+v want %+v", in, got, want)
		}
	}
}

func TestActionResultEnvelope(t *testing.T) {
	var r ActionResult
	if err := json.Unmarshal([]byte(`{"error":{"message":["Duplicate booking"]}}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.OK() || r.Error.Message[0] != "Duplicate booking" {
		t.Fatalf("unexpected result: %+v", r)
	}
}
