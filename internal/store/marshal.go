package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// timeLayout keeps stored times sortable as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func marshalTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func unmarshalTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unmarshal time: %w", err)
	}
	return t, nil
}

func marshalPos(p terrain.Pos) (string, error) {
	data, err := trace.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal anchor: %w", err)
	}
	return string(data), nil
}

func unmarshalPos(s string) (terrain.Pos, error) {
	var p terrain.Pos
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return terrain.Pos{}, fmt.Errorf("unmarshal anchor: %w", err)
	}
	return p, nil
}

func unmarshalID(s string) (ident.ID, error) {
	var id ident.ID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return ident.ID{}, err
	}
	return id, nil
}

func unmarshalRecord(body string) (trace.Record, error) {
	var r trace.Record
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return trace.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return r, nil
}

// indexColumns returns the reason and category copied out of a record.
func indexColumns(r trace.Record) (reason, category string) {
	if r.Block == nil {
		return "", ""
	}
	return string(r.Block.Reason), string(r.Block.Category)
}
