// Package codec round-trips the indentation-based plain-text form of
// a subtree: one item per line, leading whitespace depth, and a
// status prefix.
package codec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jrnl/internal/model"
	"jrnl/internal/tree"
)

// ItemStore is the slice of the store the codec needs.
type ItemStore interface {
	CreateWithStatus(ctx context.Context, title string, status model.Status, parentID *int64) (int64, error)
	Subtree(ctx context.Context, rootID int64) ([]model.Item, error)
}

// Codec encodes and decodes subtrees against a store.
type Codec struct {
	store ItemStore
}

// New returns a codec bound to the given store.
func New(s ItemStore) *Codec {
	return &Codec{store: s}
}

// Status prefixes, two characters each (mark + space). Lines with no
// recognized prefix decode as notes.
var statusPrefixes = map[byte]model.Status{
	'.':  model.StatusTodo,
	'x':  model.StatusDone,
	'/':  model.StatusDoing,
	'\\': model.StatusWaiting,
	'-':  model.StatusNote,
}

func prefixFor(st model.Status) string {
	switch st {
	case model.StatusTodo:
		return ". "
	case model.StatusDone:
		return "x "
	case model.StatusDoing:
		return "/ "
	case model.StatusWaiting:
		return "\\ "
	default:
		return "- "
	}
}

// Line is one decoded input line.
type Line struct {
	Indent int
	Title  string
	Status model.Status
}

// ParseLine splits a raw line into indentation depth, status, and
// title. Indentation is the count of leading whitespace characters.
func ParseLine(raw string) Line {
	indent := 0
	for indent < len(raw) && (raw[indent] == '\t' || raw[indent] == ' ') {
		indent++
	}
	body := raw[indent:]

	status := model.StatusNote
	if len(body) >= 2 && body[1] == ' ' {
		if st, ok := statusPrefixes[body[0]]; ok {
			status = st
			body = body[2:]
		}
	}
	return Line{Indent: indent, Title: strings.TrimSpace(body), Status: status}
}

// DecodeIndentedText creates items from text, nesting by indentation.
// Blank lines and lines whose trimmed content starts with # are
// skipped. Top-level lines attach under parentID (nil for the top
// level) and their new ids are returned. On failure the ids created
// before the failing line are still returned, so callers can remove
// the partial import.
func (c *Codec) DecodeIndentedText(ctx context.Context, text string, parentID *int64) ([]int64, error) {
	type frame struct {
		indent int
		id     int64
	}

	var (
		stack   []frame
		rootIDs []int64
	)

	for lineNo, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(raw), "#") {
			continue
		}

		line := ParseLine(raw)
		if line.Title == "" {
			continue
		}

		// Pop back to the nearest shallower entry.
		for len(stack) > 0 && stack[len(stack)-1].indent >= line.Indent {
			stack = stack[:len(stack)-1]
		}

		parent := parentID
		if len(stack) > 0 {
			parent = &stack[len(stack)-1].id
		}

		id, err := c.store.CreateWithStatus(ctx, line.Title, line.Status, parent)
		if err != nil {
			return rootIDs, fmt.Errorf("importing line %d: %w", lineNo+1, err)
		}

		if len(stack) == 0 {
			rootIDs = append(rootIDs, id)
		}
		stack = append(stack, frame{indent: line.Indent, id: id})
	}

	return rootIDs, nil
}

// EncodeSubtree renders the subtree rooted at rootID: tabs for depth,
// then the status prefix and title.
func (c *Codec) EncodeSubtree(ctx context.Context, rootID int64) (string, error) {
	items, err := c.store.Subtree(ctx, rootID)
	if err != nil {
		return "", fmt.Errorf("encoding subtree %d: %w", rootID, err)
	}
	return EncodeItems(items), nil
}

// EncodeItems renders a flat item slice as indented text, rebuilding
// the forest from parent references.
func EncodeItems(items []model.Item) string {
	forest := tree.BuildForest(items)

	var b strings.Builder
	forest.Walk(func(it model.Item, depth int) {
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString(prefixFor(it.Status))
		b.WriteString(it.Title)
		b.WriteByte('\n')
	})
	return b.String()
}

// ExportToFile writes the encoded subtree to path. The content goes
// to a temporary file in the destination directory first and is
// renamed into place, so a failed write never leaves a half-written
// file that looks like a successful export.
func (c *Codec) ExportToFile(ctx context.Context, rootID int64, path string) error {
	text, err := c.EncodeSubtree(ctx, rootID)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".jrnl-export-*")
	if err != nil {
		return fmt.Errorf("creating temporary export file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving export into place at %s: %w", path, err)
	}
	return nil
}

// ImportFromFile decodes the file at path, attaching top-level items
// under parentID.
func (c *Codec) ImportFromFile(ctx context.Context, path string, parentID *int64) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file %s: %w", path, err)
	}
	return c.DecodeIndentedText(ctx, string(data), parentID)
}
