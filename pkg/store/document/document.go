// Package document reads Kripke structures from YAML, JSON and TOML files.
//
// Every encoding is normalized to JSON, checked against the embedded
// structure schema and then decoded, so the three formats accept exactly
// the same documents.
package document

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed structure.schema.json
var schemaData []byte

const schemaURL = "structure.schema.json"

var (
	structureSchema *jsonschema.Schema
	compileOnce     sync.Once
	compileErr      error
)

// Extensions lists the file extensions served by this store
var Extensions = []string{".yaml", ".yml", ".json", ".toml"}

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal structure schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add structure schema resource: %w", err)
			return
		}

		structureSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			compileErr = fmt.Errorf("compile structure schema: %w", err)
		}
	})
	return compileErr
}

// Load reads the structure document at path
func Load(path string) (*kripke.Structure, error) {
	logger := logging.GetLogger("store.document").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "cannot read document")
	}

	s, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("structure", s.String()).Msg("Structure loaded")
	return s, nil
}

// Decode parses a document of the given extension
func Decode(data []byte, ext string) (*kripke.Structure, error) {
	normalized, err := toJSON(data, strings.ToLower(ext))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreInvalid, "cannot parse %s document", strings.TrimPrefix(ext, "."))
	}

	if err := compileSchema(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "structure schema is invalid")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(normalized))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "cannot parse document")
	}
	if err := structureSchema.Validate(inst); err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "document does not match the structure schema")
	}

	var s kripke.Structure
	if err := json.Unmarshal(normalized, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "cannot decode document")
	}
	return &s, nil
}

func toJSON(data []byte, ext string) ([]byte, error) {
	var doc interface{}
	switch ext {
	case ".json":
		return data, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported document extension %q", ext)
	}
	return json.Marshal(doc)
}

// Encode renders s in the encoding of ext
func Encode(s *kripke.Structure, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return json.MarshalIndent(s, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	case ".toml":
		return toml.Marshal(s)
	default:
		return nil, errors.Newf(errors.ErrStoreUnsupported, "unsupported document extension %q", ext)
	}
}
