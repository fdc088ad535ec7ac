package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// File extensions.
const (
	ExtJSON       = ".json"
	ExtCompressed = ".json.zst"
)

// DataVersion is written into saved templates.
const DataVersion = 3955

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("template.schema.json", schemaJSON)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type fileDoc struct {
	DataVersion int          `json:"dataVersion,omitempty"`
	Size        [3]int       `json:"size"`
	Palette     []string     `json:"palette"`
	Blocks      []fileBlock  `json:"blocks"`
	Entities    []fileEntity `json:"entities,omitempty"`
}

type fileBlock struct {
	Pos   [3]int         `json:"pos"`
	State int            `json:"state"`
	NBT   map[string]any `json:"nbt,omitempty"`
}

type fileEntity struct {
	Pos      [3]float64     `json:"pos"`
	BlockPos [3]int         `json:"blockPos"`
	NBT      map[string]any `json:"nbt"`
}

// Load reads a template file. Compressed files are detected by content,
// not by name.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Code: ErrCodeRead, Message: "cannot read template", Err: err}
	}
	t, err := Decode(data)
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Decode parses template bytes, decompressing zstd input first.
func Decode(data []byte) (*Template, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, &FormatError{Code: ErrCodeCompression, Message: "zstd reader", Err: err}
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, &FormatError{Code: ErrCodeCompression, Message: "corrupt zstd stream", Err: err}
		}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Code: ErrCodeSyntax, Message: err.Error(), Err: err}
	}
	if err := schema.Validate(raw); err != nil {
		return nil, &FormatError{Code: ErrCodeSchema, Message: schemaMessage(err), Err: err}
	}

	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Code: ErrCodeSyntax, Message: err.Error(), Err: err}
	}
	return doc.build()
}

func schemaMessage(err error) string {
	if ve, ok := err.(*jsonschema.ValidationError); ok {
		leaf := ve
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return fmt.Sprintf("%s: %s", loc, leaf.Message)
	}
	return err.Error()
}

func (doc *fileDoc) build() (*Template, error) {
	palette := make([]blockstate.State, len(doc.Palette))
	for i, text := range doc.Palette {
		s, err := blockstate.Parse(text)
		if err != nil {
			return nil, &FormatError{
				Code:    ErrCodeContent,
				Message: fmt.Sprintf("palette[%d]: %v", i, err),
				Err:     err,
			}
		}
		palette[i] = s
	}

	t := &Template{Size: posOf(doc.Size)}
	t.Blocks = make([]Block, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		if b.State >= len(palette) {
			return nil, &FormatError{
				Code:    ErrCodeContent,
				Message: fmt.Sprintf("blocks[%d]: state %d outside palette of %d", i, b.State, len(palette)),
			}
		}
		t.Blocks = append(t.Blocks, Block{
			Pos:   posOf(b.Pos),
			State: palette[b.State].Clone(),
			NBT:   compoundOf(b.NBT),
		})
	}
	for _, e := range doc.Entities {
		t.Entities = append(t.Entities, Entity{
			Pos:      Vec{X: e.Pos[0], Y: e.Pos[1], Z: e.Pos[2]},
			BlockPos: posOf(e.BlockPos),
			NBT:      compoundOf(e.NBT),
		})
	}
	return t, nil
}

// Encode renders t as indented JSON, zstd compressed when compress is set.
func Encode(t *Template, compress bool) ([]byte, error) {
	palette := t.Palette()
	index := make(map[string]int, len(palette))
	doc := fileDoc{
		DataVersion: DataVersion,
		Size:        arrOf(t.Size),
		Palette:     make([]string, len(palette)),
		Blocks:      make([]fileBlock, 0, len(t.Blocks)),
	}
	for i, s := range palette {
		doc.Palette[i] = s.String()
		index[doc.Palette[i]] = i
	}
	for _, b := range t.Blocks {
		doc.Blocks = append(doc.Blocks, fileBlock{
			Pos:   arrOf(b.Pos),
			State: index[b.State.String()],
			NBT:   b.NBT,
		})
	}
	for _, e := range t.Entities {
		data := e.NBT
		if data == nil {
			data = nbt.Compound{}
		}
		doc.Entities = append(doc.Entities, fileEntity{
			Pos:      [3]float64{e.Pos.X, e.Pos.Y, e.Pos.Z},
			BlockPos: arrOf(e.BlockPos),
			NBT:      data,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &FormatError{Code: ErrCodeSyntax, Message: "marshal template", Err: err}
	}
	data = append(data, '\n')
	if !compress {
		return data, nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, &FormatError{Code: ErrCodeCompression, Message: "zstd writer", Err: err}
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// Save writes t to path, compressing when path ends in ExtCompressed.
func Save(path string, t *Template) error {
	data, err := Encode(t, strings.HasSuffix(path, ExtCompressed))
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = path
		}
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &FormatError{Path: path, Code: ErrCodeRead, Message: "create directory", Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FormatError{Path: path, Code: ErrCodeRead, Message: "write template", Err: err}
	}
	return nil
}

func posOf(a [3]int) terrain.Pos {
	return terrain.Pos{X: a[0], Y: a[1], Z: a[2]}
}

func arrOf(p terrain.Pos) [3]int {
	return [3]int{p.X, p.Y, p.Z}
}

func compoundOf(m map[string]any) nbt.Compound {
	if m == nil {
		return nil
	}
	return nbt.Compound(m)
}
