package protocol

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/testutil"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		wantType string
		wantErr  bool
	}{
		{"static", `{"type":"static","content":{"steps":10}}`, TypeStatic, false},
		{"step", `{"type":"step","content":{"step":3}}`, TypeStep, false},
		{"not json", `{"type":`, "", true},
		{"unknown type", `{"type":"chat","content":{}}`, "", true},
		{"missing content", `{"type":"step"}`, "", true},
		{"null content", `{"type":"static","content":null}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.frame))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, errors.ErrMalformedFrame) {
					t.Errorf("error %v should wrap ErrMalformedFrame", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeEnvelope() error = %v", err)
			}
			if env.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", env.Type, tt.wantType)
			}
		})
	}
}

func TestEncodeDecodeSnapshots(t *testing.T) {
	static := testutil.SampleStatic()
	dynamic := testutil.SampleDynamic()

	raw, err := Encode(TypeStatic, static)
	if err != nil {
		t.Fatalf("Encode(static) error = %v", err)
	}
	env, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	gotStatic, err := DecodeStatic(env.Content)
	if err != nil {
		t.Fatalf("DecodeStatic() error = %v", err)
	}
	if !reflect.DeepEqual(gotStatic, static) {
		t.Errorf("static = %+v, want %+v", gotStatic, static)
	}

	raw, err = Encode(TypeStep, dynamic)
	if err != nil {
		t.Fatalf("Encode(step) error = %v", err)
	}
	env, err = DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	gotDynamic, err := DecodeDynamic(env.Content)
	if err != nil {
		t.Fatalf("DecodeDynamic() error = %v", err)
	}
	if gotDynamic.Step != dynamic.Step || len(gotDynamic.Tasks) != len(dynamic.Tasks) {
		t.Errorf("dynamic = %+v", gotDynamic)
	}
	if terrain, ok := gotDynamic.Cells.At(3, 0); !ok || terrain != 2 {
		t.Errorf("Cells.At(3,0) = %v, %v", terrain, ok)
	}
}

func TestDecodeContentErrors(t *testing.T) {
	if _, err := DecodeStatic(json.RawMessage(`{"steps":"many"}`)); !errors.Is(err, errors.ErrMalformedFrame) {
		t.Errorf("DecodeStatic() error = %v, want ErrMalformedFrame", err)
	}
	if _, err := DecodeDynamic(json.RawMessage(`[1,2]`)); !errors.Is(err, errors.ErrMalformedFrame) {
		t.Errorf("DecodeDynamic() error = %v, want ErrMalformedFrame", err)
	}
}

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}

	staticRaw, _ := json.Marshal(testutil.SampleStatic())
	stepRaw, _ := json.Marshal(testutil.SampleDynamic())

	tests := []struct {
		name       string
		kind       string
		raw        string
		wantSchema bool
		wantFrame  bool
	}{
		{name: "sample static", kind: TypeStatic, raw: string(staticRaw)},
		{name: "sample step", kind: TypeStep, raw: string(stepRaw)},
		{name: "minimal step", kind: TypeStep, raw: `{"step":0}`},
		{name: "step with null lists", kind: TypeStep, raw: `{"step":1,"tasks":null,"blocks":null,"cells":[[0,null],null]}`},
		{name: "static without grid", kind: TypeStatic, raw: `{"teams":{},"steps":5}`, wantSchema: true},
		{name: "negative step", kind: TypeStep, raw: `{"step":-1}`, wantSchema: true},
		{name: "block without type", kind: TypeStep, raw: `{"step":1,"blocks":[{"x":0,"y":0}]}`, wantSchema: true},
		{name: "task reward as string", kind: TypeStep, raw: `{"step":1,"tasks":[{"name":"t","reward":"1","deadline":2,"requirements":[]}]}`, wantSchema: true},
		{name: "not json", kind: TypeStep, raw: `{`, wantFrame: true},
		{name: "unknown kind", kind: "chat", raw: `{}`, wantFrame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.kind, json.RawMessage(tt.raw))
			switch {
			case tt.wantSchema:
				if !errors.Is(err, errors.ErrSchemaViolation) {
					t.Errorf("Validate() error = %v, want ErrSchemaViolation", err)
				}
			case tt.wantFrame:
				if !errors.Is(err, errors.ErrMalformedFrame) {
					t.Errorf("Validate() error = %v, want ErrMalformedFrame", err)
				}
			default:
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
			}
		})
	}
}
