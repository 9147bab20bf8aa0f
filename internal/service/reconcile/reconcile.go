package reconcile

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/ougirez/silverboard/internal/domain"
)

// Normalize collapses surrounding and internal whitespace runs to single
// spaces. Case is preserved; the table lookup is case-sensitive.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Table maps canonical region names to short codes. Several keys may map to
// the same code: historical spellings ("Orissa", "Pondicherry") sit beside
// the current ones as separate entries.
type Table struct {
	codes map[string]string
}

// ParseTable decodes the reference table from its JSON form, a flat
// name-to-code object. Keys are normalized on the way in so the file may be
// hand-edited without worrying about stray spaces.
func ParseTable(data []byte) (*Table, error) {
	var raw map[string]string
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse region code table: %w", err)
	}
	codes := make(map[string]string, len(raw))
	for name, code := range raw {
		codes[Normalize(name)] = code
	}
	return &Table{codes: codes}, nil
}

func NewTable(codes map[string]string) *Table {
	t := &Table{codes: make(map[string]string, len(codes))}
	for name, code := range codes {
		t.codes[Normalize(name)] = code
	}
	return t
}

// Resolve looks up an already-normalized name. Absence is not an error.
func (t *Table) Resolve(name string) (string, bool) {
	code, ok := t.codes[name]
	return code, ok
}

func (t *Table) Len() int {
	return len(t.codes)
}

// Result carries the annotated rows and the distinct set of names that did
// not resolve, in first-seen order. Unmatched rows keep an empty code and
// stay in the slice: they still count toward geometry-free aggregates.
type Result struct {
	Records   []domain.PurchaseRecord
	Unmatched []string
}

// Annotate normalizes every record's state name and fills in its region
// code where the table knows it.
func (t *Table) Annotate(records []domain.PurchaseRecord) Result {
	res := Result{Records: make([]domain.PurchaseRecord, len(records))}
	seen := make(map[string]struct{})
	for i, rec := range records {
		rec.StateName = Normalize(rec.StateName)
		code, ok := t.Resolve(rec.StateName)
		if ok {
			rec.RegionCode = code
		} else if _, dup := seen[rec.StateName]; !dup {
			seen[rec.StateName] = struct{}{}
			res.Unmatched = append(res.Unmatched, rec.StateName)
		}
		res.Records[i] = rec
	}
	return res
}
