package column

import (
	"bytes"
	"math"
	"strings"

	"github.com/arloliu/redbin/endian"
	"github.com/arloliu/redbin/format"
	"github.com/arloliu/redbin/internal/pool"
)

// textPadding is stripped from the right of CHR values.
const textPadding = " \t\n\v\f\r"

// walkRecords visits each requested position of a byte-aligned column.
//
// In-range positions are read into a pooled scratch record and passed to
// emit; the slice is only valid during the call. Out-of-range positions are
// passed to emitNA. Records are read in request order, and the source only
// seeks when the next record does not start where the previous one ended.
func walkRecords(src *source, meta Meta, positions []int, emitNA func(i int), emit func(i int, rec []byte)) error {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	width := int64(meta.UnitWidth)
	rec := buf.Resize(meta.UnitWidth)

	for i, p := range positions {
		if p < 1 || p > meta.RecordCount {
			emitNA(i)
			continue
		}

		if err := src.seek(int64(p-1) * width); err != nil {
			return err
		}
		if err := src.readRecord(rec); err != nil {
			return err
		}
		emit(i, rec)
	}

	return nil
}

// decodeFixedInts decodes INT (unsigned 16-bit) and LNG (signed 32-bit) records.
// Only the leading scalar of each record is significant.
func decodeFixedInts(src *source, meta Meta, positions []int) ([]int32, error) {
	engine := endian.GetLittleEndianEngine()
	out := make([]int32, len(positions))

	var value func(rec []byte) int32
	if meta.Kind == format.KindINT {
		value = func(rec []byte) int32 { return int32(engine.Uint16(rec)) }
	} else {
		value = func(rec []byte) int32 { return int32(engine.Uint32(rec)) } //nolint:gosec
	}

	err := walkRecords(src, meta, positions,
		func(i int) { out[i] = format.NAInt32 },
		func(i int, rec []byte) { out[i] = value(rec) },
	)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// decodeFixedFloats decodes REAL records.
func decodeFixedFloats(src *source, meta Meta, positions []int) ([]float64, error) {
	engine := endian.GetLittleEndianEngine()
	out := make([]float64, len(positions))

	err := walkRecords(src, meta, positions,
		func(i int) { out[i] = format.NAFloat64() },
		func(i int, rec []byte) { out[i] = math.Float64frombits(engine.Uint64(rec)) },
	)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// decodeFixedTexts decodes CHR records.
func decodeFixedTexts(src *source, meta Meta, positions []int) ([]Text, error) {
	out := make([]Text, len(positions))

	err := walkRecords(src, meta, positions,
		func(i int) { out[i] = NAText },
		func(i int, rec []byte) { out[i] = Text{Value: chrValue(rec)} },
	)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// chrValue ends a CHR record at its first NUL and strips trailing padding.
func chrValue(rec []byte) string {
	if end := bytes.IndexByte(rec, 0); end >= 0 {
		rec = rec[:end]
	}

	return strings.TrimRight(string(rec), textPadding)
}
