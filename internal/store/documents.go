package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// SchemaVersion tags every document this build writes.
const SchemaVersion = 1

// Document kinds; a kind is also the key prefix.
const (
	KindEvaluation = "evaluation"
	KindChat       = "chat"
)

type envelope struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

// Documents stores JSON values in a versioned envelope:
//
//	{"version":1,"kind":"evaluation","data":{...}}
//
// Writes replace the whole document; callers are single writers per key.
type Documents struct {
	kv KV
}

func NewDocuments(kv KV) *Documents {
	return &Documents{kv: kv}
}

// Key returns the storage key of (kind, id), e.g. "evaluation:<id>".
func Key(kind, id string) string {
	return kind + ":" + id
}

// Put marshals v and stores it under (kind, id).
func (d *Documents) Put(ctx context.Context, kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Kind: kind, Data: data})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := d.kv.Set(ctx, Key(kind, id), raw); err != nil {
		return fmt.Errorf("store %s %s: %w", kind, id, err)
	}
	return nil
}

// Get loads (kind, id) into v. It returns ErrNotFound for a missing key and
// ErrSchemaVersion for a document written by another schema version.
func (d *Documents) Get(ctx context.Context, kind, id string, v any) error {
	raw, err := d.kv.Get(ctx, Key(kind, id))
	if err != nil {
		return fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != SchemaVersion {
		return fmt.Errorf("load %s %s: %w: got %d, want %d", kind, id, ErrSchemaVersion, env.Version, SchemaVersion)
	}
	if env.Kind != kind {
		return fmt.Errorf("load %s %s: document kind is %q", kind, id, env.Kind)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", kind, err)
	}
	return nil
}

// Delete removes (kind, id).
func (d *Documents) Delete(ctx context.Context, kind, id string) error {
	if err := d.kv.Delete(ctx, Key(kind, id)); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return nil
}
