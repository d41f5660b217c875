package routes

import (
	"encoding/json"
	"math"
	"testing"
)

func TestJSONInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{`5`, 5, true},
		{`-3`, -3, true},
		{`7.0`, 7, true},
		{`"12"`, 12, true},
		{`" 8 "`, 8, true},
		{`1.5`, 0, false},
		{`"1.5"`, 0, false},
		{`"abc"`, 0, false},
		{`true`, 0, false},
		{`[1]`, 0, false},
		{`{"n":1}`, 0, false},
		{`1e3`, 1000, true},
		{`9223372036854775807`, math.MaxInt64, true},
		{`-9223372036854775808`, math.MinInt64, true},
		{`9223372036854775807.0`, math.MaxInt64, true},
		{`9223372036854775808`, 0, false},
		{`-9223372036854775809`, 0, false},
		{`9223372036854775808.0`, 0, false},
		{`1e19`, 0, false},
		{`1e400`, 0, false},
		{`"9223372036854775808"`, 0, false},
	}

	for _, tt := range tests {
		got, ok := jsonInt(json.RawMessage(tt.in))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("jsonInt(%s) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestJSONString(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{`"intro"`, "intro", true},
		{`5`, "5", true},
		{`2.50`, "2.50", true},
		{`true`, "", false},
		{`["a"]`, "", false},
		{`{"a":1}`, "", false},
	}

	for _, tt := range tests {
		got, ok := jsonString(json.RawMessage(tt.in))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("jsonString(%s) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseJSONArgs(t *testing.T) {
	args, err := parseJSONArgs([]byte(`{"name":"a","likes":null,"extra":"ignored"}`))
	if err != nil {
		t.Fatal(err)
	}
	if args.Name == nil || *args.Name != "a" {
		t.Errorf("name = %v", args.Name)
	}
	if args.Views != nil || args.Likes != nil {
		t.Errorf("views/likes should be absent: %v %v", args.Views, args.Likes)
	}

	args, err = parseJSONArgs(nil)
	if err != nil || args.Name != nil {
		t.Errorf("empty body: %+v %v", args, err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{Message: "missing required fields"}
	verr.add("likes")
	verr.add("name")

	if got := verr.Error(); got != "missing required fields: name, likes" {
		t.Errorf("Error() = %q", got)
	}
	if verr.Fields["name"] != "Name of the video is required" {
		t.Errorf("name help = %q", verr.Fields["name"])
	}
}
