package prompt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"sermon-art-backend/internal/presets"
)

var ErrTemplateMalformed = errors.New("template is not valid JSON")

// TemplateError reports a preset whose template cannot be materialized.
type TemplateError struct {
	PresetID string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("preset %s: %v", e.PresetID, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Object is a JSON object that keeps its members in document order.
type Object struct {
	Members []Member
}

type Member struct {
	Key   string
	Value any
}

// Get returns the value of the first member named key.
func (o *Object) Get(key string) (any, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return Encode(o)
}

// Parse decodes a template into a tree of *Object, []any, string,
// json.Number, bool and nil values.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrTemplateMalformed)
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &Object{Members: []Member{}}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not string", keyTok)
			}
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, Member{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// Encode serializes a template tree, keeping object member order and leaving
// HTML characters unescaped.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Object:
		buf.WriteByte('{')
		for i, m := range t.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		return encodeString(buf, t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode %T: %w", t, err)
		}
		buf.Write(b)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// Materialize returns a copy of v with every bound {token} replaced in every
// string leaf. Structure, member order and non-string leaves are unchanged.
func Materialize(v any, b Bindings) any {
	return materialize(v, b.replacer())
}

func materialize(v any, r *strings.Replacer) any {
	switch t := v.(type) {
	case string:
		return r.Replace(t)
	case *Object:
		out := &Object{Members: make([]Member, len(t.Members))}
		for i, m := range t.Members {
			out.Members[i] = Member{Key: m.Key, Value: materialize(m.Value, r)}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = materialize(item, r)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = materialize(item, r)
		}
		return out
	}
	return v
}

// MaterializeTemplate parses, materializes and re-serializes a template string.
func MaterializeTemplate(template string, b Bindings) (string, error) {
	tree, err := Parse([]byte(template))
	if err != nil {
		return "", err
	}
	out, err := Encode(Materialize(tree, b))
	if err != nil {
		return "", fmt.Errorf("failed to encode template: %w", err)
	}
	return string(out), nil
}

// MaterializePreset expands a preset's template for a sermon.
func MaterializePreset(p presets.StylePreset, s Sermon) (string, error) {
	out, err := MaterializeTemplate(p.PromptModifiers, SermonBindings(s))
	if err != nil {
		return "", &TemplateError{PresetID: p.ID, Err: err}
	}
	return out, nil
}
