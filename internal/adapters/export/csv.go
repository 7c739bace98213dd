// Package export writes per-player event tables as downloadable CSV files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/matchscope/internal/domain/model"
)

// Kind selects which table of a player is exported.
type Kind string

// Export kinds.
const (
	KindPasses Kind = "passes"
	KindShots  Kind = "shots"
)

// ContentType of every exported file.
const ContentType = "text/csv; charset=utf-8"

// Header is the column row. The first column is the unnamed row index.
var Header = []string{ //nolint:gochecknoglobals
	"", "id", "match_id", "period", "minute", "second", "team", "player", "type",
	"location", "pass_end_location", "pass_outcome", "shot_outcome",
}

// File is an encoded export ready to be served or written to disk.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseKind validates a kind taken from a URL or flag.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindPasses, KindShots:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// EventType is the event type a kind exports.
func (k Kind) EventType() string {
	if k == KindShots {
		return model.TypeShot
	}
	return model.TypePass
}

// FileName returns passes_<player>.csv or chutes_<player>.csv.
func FileName(kind Kind, player string) string {
	prefix := "passes"
	if kind == KindShots {
		prefix = "chutes"
	}
	return prefix + "_" + player + ".csv"
}

// Encode writes events as UTF-8 CSV with a header row.
func Encode(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i, e := range events {
		id := ""
		if e.ID != uuid.Nil {
			id = e.ID.String()
		}
		record := []string{
			strconv.Itoa(i),
			id,
			strconv.Itoa(e.MatchID),
			strconv.Itoa(e.Period),
			strconv.Itoa(e.Minute),
			strconv.Itoa(e.Second),
			e.Team,
			e.Player,
			e.Type,
			formatPoint(e.Location),
			formatPoint(e.PassEndLocation),
			e.PassOutcome,
			e.ShotOutcome,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(events []model.Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a file produced by Encode. Index and event order are the
// row order; Event.Index is not exported and stays zero.
func Decode(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	events := make([]model.Event, 0, len(records)-1)
	for n, rec := range records[1:] {
		e, err := decodeRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, n+1, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func decodeRecord(rec []string) (model.Event, error) {
	var (
		e   model.Event
		err error
	)
	if rec[1] != "" {
		if e.ID, err = uuid.Parse(rec[1]); err != nil {
			return e, err
		}
	}
	ints := []*int{&e.MatchID, &e.Period, &e.Minute, &e.Second}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(rec[2+i]); err != nil {
			return e, err
		}
	}
	e.Team, e.Player, e.Type = rec[6], rec[7], rec[8]
	if e.Location, err = parsePoint(rec[9]); err != nil {
		return e, err
	}
	if e.PassEndLocation, err = parsePoint(rec[10]); err != nil {
		return e, err
	}
	e.PassOutcome, e.ShotOutcome = rec[11], rec[12]
	return e, nil
}

func formatPoint(p *model.Point) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func parsePoint(s string) (*model.Point, error) {
	if s == "" {
		return nil, nil
	}
	inner, ok := strings.CutPrefix(s, "[")
	if ok {
		inner, ok = strings.CutSuffix(inner, "]")
	}
	if !ok {
		return nil, fmt.Errorf("point %q", s)
	}
	xs, ys, ok := strings.Cut(inner, ",")
	if !ok {
		return nil, fmt.Errorf("point %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return nil, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return nil, err
	}
	return &model.Point{X: x, Y: y}, nil
}
