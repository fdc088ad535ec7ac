package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
)

//go:embed schema.cue
var schemaSource string

// LoadErrorCode categorizes registry file failures.
type LoadErrorCode string

const (
	ErrCodeRead       LoadErrorCode = "R001" // file could not be read
	ErrCodeFormat     LoadErrorCode = "R002" // unsupported file extension
	ErrCodeSyntax     LoadErrorCode = "R003" // CUE/JSON/YAML syntax error
	ErrCodeSchema     LoadErrorCode = "R004" // document does not satisfy #File
	ErrCodeDefinition LoadErrorCode = "R005" // block definition is inconsistent
)

// LoadError reports a registry file that could not be loaded.
type LoadError struct {
	Path    string
	Code    LoadErrorCode
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s:%d:%d: %s", e.Code, e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// IsLoadError reports whether err is a *LoadError with the given code.
func IsLoadError(err error, code LoadErrorCode) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

type fileDoc struct {
	Blocks []blockDoc `json:"blocks"`
	Items  []string   `json:"items"`
}

type blockDoc struct {
	ID         string                `json:"id"`
	Properties []blockstate.Property `json:"properties"`
}

// LoadFile reads one registry file. The format is chosen by extension:
// .cue, .json, .yaml or .yml.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Code: ErrCodeRead, Message: err.Error()}
	}
	return Decode(data, path)
}

// LoadFiles loads every path and merges it into base, in order.
func LoadFiles(base *Memory, paths ...string) error {
	for _, p := range paths {
		m, err := LoadFile(p)
		if err != nil {
			return err
		}
		base.Merge(m)
	}
	return nil
}

// Decode parses registry file content. filename selects the format and is
// used in error positions.
func Decode(data []byte, filename string) (*Memory, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("registry schema: %w", err)
	}

	var doc cue.Value
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".cue", ".json":
		doc = ctx.CompileBytes(data, cue.Filename(filename))
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &LoadError{Path: filename, Code: ErrCodeSyntax, Message: err.Error()}
		}
		if raw == nil {
			return New(), nil
		}
		doc = ctx.Encode(raw)
	default:
		return nil, &LoadError{Path: filename, Code: ErrCodeFormat, Message: "unsupported registry file extension"}
	}
	if err := doc.Err(); err != nil {
		return nil, cueLoadError(filename, ErrCodeSyntax, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#File")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(filename, ErrCodeSchema, err)
	}

	var file fileDoc
	if err := unified.Decode(&file); err != nil {
		return nil, cueLoadError(filename, ErrCodeSchema, err)
	}
	return build(filename, file)
}

func build(filename string, file fileDoc) (*Memory, error) {
	m := New()
	for _, b := range file.Blocks {
		id, err := ident.Parse(b.ID)
		if err != nil {
			return nil, &LoadError{Path: filename, Code: ErrCodeDefinition, Message: err.Error()}
		}
		def := blockstate.NewDefinition(id, b.Properties...)
		if err := m.AddBlock(def); err != nil {
			return nil, &LoadError{Path: filename, Code: ErrCodeDefinition, Message: err.Error()}
		}
	}
	for _, raw := range file.Items {
		id, err := ident.Parse(raw)
		if err != nil {
			return nil, &LoadError{Path: filename, Code: ErrCodeDefinition, Message: err.Error()}
		}
		m.AddItem(id)
	}
	return m, nil
}

// cueLoadError keeps the first CUE error and its position.
func cueLoadError(filename string, code LoadErrorCode, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Path: filename, Code: code, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Path: filename, Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
