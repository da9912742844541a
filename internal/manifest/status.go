package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const statusSchemaURL = "https://zoi.zillowe.dev/schemas/version.schema.json"

// statusSchema describes the fields the release tooling reads and writes.
// Anything else in the document is carried through untouched.
const statusSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["latest"],
  "properties": {
    "latest": {
      "type": "object",
      "required": ["production", "development"],
      "properties": {
        "production": { "$ref": "#/$defs/track" },
        "development": { "$ref": "#/$defs/track" }
      }
    }
  },
  "$defs": {
    "track": {
      "type": "object",
      "required": ["version", "status"],
      "properties": {
        "version": { "type": "string" },
        "status": { "type": "string" }
      }
    }
  }
}`

var compiledStatusSchema = mustCompileStatusSchema()

func mustCompileStatusSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(statusSchema)))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err = c.AddResource(statusSchemaURL, doc); err != nil {
		panic(err)
	}
	return c.MustCompile(statusSchemaURL)
}

// Status file track keys.
const (
	KeyProduction  = "production"
	KeyDevelopment = "development"
)

// TrackStatus is one track entry of the status file.
type TrackStatus struct {
	Version string
	Status  string
}

// StatusFile is the JSON document advertising the latest release of each track.
type StatusFile struct {
	Path    string
	data    []byte
	touched bool
}

// ParseStatus validates data and wraps it for editing.
func ParseStatus(path string, data []byte) (*StatusFile, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedJSONError{Path: path, Wrapped: err}
	}
	if err = compiledStatusSchema.Validate(doc); err != nil {
		return nil, &InvalidStatusDocumentError{Path: path, Wrapped: err}
	}
	return &StatusFile{Path: path, data: data}, nil
}

// Track returns the entry stored under key (KeyProduction or KeyDevelopment).
func (s *StatusFile) Track(key string) TrackStatus {
	r := gjson.GetManyBytes(s.data, trackPath(key, "version"), trackPath(key, "status"))
	return TrackStatus{Version: r[0].String(), Status: r[1].String()}
}

// SetVersion sets latest.<key>.version.
func (s *StatusFile) SetVersion(key, v string) error {
	return s.set(trackPath(key, "version"), v)
}

// SetStatus sets latest.<key>.status.
func (s *StatusFile) SetStatus(key, v string) error {
	return s.set(trackPath(key, "status"), v)
}

func (s *StatusFile) set(path, v string) error {
	raw, err := encodeString(v)
	if err != nil {
		return fmt.Errorf("encoding %s for %s: %w", v, s.Path, err)
	}
	out, err := sjson.SetRawBytes(s.data, path, raw)
	if err != nil {
		return fmt.Errorf("updating %s in %s: %w", path, s.Path, err)
	}
	s.data = out
	s.touched = true
	return nil
}

// Touched reports whether the document was modified.
func (s *StatusFile) Touched() bool {
	return s.touched
}

// Bytes serialises the document with two-space indentation and a single
// trailing newline, keeping key order.
func (s *StatusFile) Bytes() []byte {
	out := pretty.PrettyOptions(s.data, &pretty.Options{Indent: "  "})
	return append(bytes.TrimRight(out, "\n"), '\n')
}

// encodeString quotes v as a JSON string, leaving &, < and > as typed.
func encodeString(v string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func trackPath(key, field string) string {
	return "latest." + key + "." + field
}
