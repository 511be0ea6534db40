package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"linefit/internal/model"
)

type record struct {
	line   int
	fields []string
}

// LoadFile reads a comma-delimited point file from path.
func LoadFile(ctx context.Context, path string) ([]model.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open points")
	}
	defer f.Close()

	points, err := Load(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return points, nil
}

// Load parses one (x, y) point per line from r. Blank lines are skipped;
// any other row must hold exactly two numeric fields.
func Load(ctx context.Context, r io.Reader) ([]model.Point, error) {
	g, ctx := errgroup.WithContext(ctx)

	records := make(chan record, 128)

	g.Go(func() error {
		defer close(records)
		return readRecords(ctx, r, records)
	})

	var result []model.Point

	g.Go(func() error {
		points, err := parseRecords(records)
		if err != nil {
			return err
		}
		result = points
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func readRecords(ctx context.Context, r io.Reader, out chan<- record) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read csv")
		}
		line, _ := reader.FieldPos(0)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- record{line: line, fields: fields}:
		}
	}
}

func parseRecords(in <-chan record) ([]model.Point, error) {
	var points []model.Point
	for rec := range in {
		if len(rec.fields) == 1 && strings.TrimSpace(rec.fields[0]) == "" {
			continue
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func parseRecord(rec record) (model.Point, error) {
	if len(rec.fields) != 2 {
		return model.Point{}, errors.Errorf("line %d: expected 2 fields, got %d", rec.line, len(rec.fields))
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(rec.fields[0]), 64)
	if err != nil {
		return model.Point{}, errors.Wrapf(err, "line %d: x", rec.line)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(rec.fields[1]), 64)
	if err != nil {
		return model.Point{}, errors.Wrapf(err, "line %d: y", rec.line)
	}
	return model.Point{X: x, Y: y}, nil
}
