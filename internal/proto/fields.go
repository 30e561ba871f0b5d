package proto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request and response keys.
const (
	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRoles     = "roles"
	FieldActive    = "active"
	FieldOwner     = "user"
	FieldTitle     = "title"
	FieldText      = "text"
	FieldCompleted = "completed"
	FieldMessage   = "message"
	FieldStatus    = "status"
	FieldUsers     = "users"
	FieldUser      = "user"
	FieldNotes     = "notes"
	FieldNote      = "note"
)

// String returns the string value under key, or "" when absent or not a string.
func String(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return ""
	}
	return sv.StringValue
}

// Bool returns the boolean under key. Anything that is not a real boolean,
// including a missing key, yields nil.
func Bool(s *structpb.Struct, key string) *bool {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	bv, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return nil
	}
	b := bv.BoolValue
	return &b
}

// Strings returns the list of strings under key. A list holding anything but
// non-empty strings yields nil.
func Strings(s *structpb.Struct, key string) []string {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	lv := v.GetListValue()
	if lv == nil {
		return nil
	}
	out := make([]string, 0, len(lv.GetValues()))
	for _, item := range lv.GetValues() {
		sv, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok || sv.StringValue == "" {
			return nil
		}
		out = append(out, sv.StringValue)
	}
	return out
}

// Encode converts any JSON-marshalable value into a Struct. v must encode as
// a JSON object.
func Encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// Decode fills v, a pointer, from s through its JSON form.
func Decode(s *structpb.Struct, v any) error {
	b, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Message builds the {"message": msg} response of mutations.
func Message(msg string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldMessage: structpb.NewStringValue(msg),
	}}
}
