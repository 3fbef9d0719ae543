package column

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/arloliu/redbin/compress"
	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/factor"
	"github.com/arloliu/redbin/format"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func newDecoder(t testing.TB, data []byte, kind format.ColumnKind, width, count int, opts ...DecoderOption) *Decoder {
	t.Helper()

	path := writeFile(t, data)

	meta, err := NewMeta(path, kind, width, count)
	require.NoError(t, err)

	d, err := NewDecoder(meta, opts...)
	require.NoError(t, err)

	return d
}

func TestDecode_BitPackedKnownWords(t *testing.T) {
	want := []int32{1, 2, 3, 4, 5, 6, 7, 8}

	t.Run("BIN", func(t *testing.T) {
		d := newDecoder(t, []byte{0x78, 0x56, 0x34, 0x12}, format.KindBIN, 4, 8)
		v, err := d.Decode(sequence(8))
		require.NoError(t, err)
		require.Equal(t, want, v.Ints())
	})

	t.Run("PCK", func(t *testing.T) {
		d := newDecoder(t, []byte{0x34, 0x12, 0x78, 0x56}, format.KindPCK, 4, 8)
		v, err := d.Decode(sequence(8))
		require.NoError(t, err)
		require.Equal(t, want, v.Ints())
	})
}

func TestDecode_BitPackedRoundTrip(t *testing.T) {
	const n = 257

	for _, kind := range []format.ColumnKind{format.KindBIN, format.KindPCK} {
		for width := 1; width <= 16; width++ {
			t.Run(fmt.Sprintf("%s/w%d", kind, width), func(t *testing.T) {
				mask := uint32(1)<<width - 1
				values := make([]uint32, n)
				want := make([]int32, n)
				for i := range values {
					values[i] = uint32(i*7919+width) & mask
					want[i] = int32(values[i])
				}

				d := newDecoder(t, packBits(values, width, kind), kind, width, n)
				v, err := d.Decode(sequence(n))
				require.NoError(t, err)
				require.Equal(t, format.KindBIN.Layout(), v.Kind().Layout())
				require.Equal(t, want, v.Ints())
				require.Nil(t, v.Floats())
				require.Nil(t, v.Texts())
			})
		}
	}
}

func TestDecode_ValueSpanningTwoWords(t *testing.T) {
	values := []uint32{1, 4, 7, 10, 13, 16, 19, 22, 25, 28}
	d := newDecoder(t, packBits(values, 5, format.KindBIN), format.KindBIN, 5, len(values))

	// Position 7 starts at bit 30 and ends at bit 34.
	v, stats, err := d.DecodeWithStats([]int{7})
	require.NoError(t, err)
	require.Equal(t, []int32{19}, v.Ints())
	require.Equal(t, int64(8), stats.BytesRead)
	require.Equal(t, 0, stats.Seeks)

	// The second word stays loaded for the next position.
	v, stats, err = d.DecodeWithStats([]int{7, 8})
	require.NoError(t, err)
	require.Equal(t, []int32{19, 22}, v.Ints())
	require.Equal(t, int64(8), stats.BytesRead)
}

func TestDecode_FullWidthWords(t *testing.T) {
	values := []uint32{0, 1, math.MaxInt32, 0x80000000, math.MaxUint32}
	d := newDecoder(t, packBits(values, 32, format.KindBIN), format.KindBIN, 32, len(values))

	v, err := d.Decode(sequence(len(values)))
	require.NoError(t, err)
	require.Equal(t, []int32{0, 1, math.MaxInt32, format.NAInt32, -1}, v.Ints())
	require.True(t, v.IsNA(3))
	require.False(t, v.IsNA(4))
}

func TestDecode_OutOfRangePositions(t *testing.T) {
	values := []uint32{3, 1, 2}
	d := newDecoder(t, packBits(values, 3, format.KindBIN), format.KindBIN, 3, len(values))

	v, stats, err := d.DecodeWithStats([]int{0, -1, 4, 1, 100, 3})
	require.NoError(t, err)
	require.Equal(t, 6, v.Len())
	require.Equal(t, []int32{format.NAInt32, format.NAInt32, format.NAInt32, 3, format.NAInt32, 2}, v.Ints())
	require.Equal(t, 6, stats.Requested)
	require.Equal(t, 4, stats.NA)
}

func TestDecode_EmptyRequestAndEmptyColumn(t *testing.T) {
	d := newDecoder(t, nil, format.KindLNG, 4, 0)

	v, err := d.Decode(nil)
	require.NoError(t, err)
	require.Equal(t, 0, v.Len())

	v, stats, err := d.DecodeWithStats([]int{1, 2})
	require.NoError(t, err)
	require.Equal(t, []int32{format.NAInt32, format.NAInt32}, v.Ints())
	require.Equal(t, int64(0), stats.BytesRead)
}

func TestDecode_OrderIndependence(t *testing.T) {
	const (
		n     = 1000
		width = 7
	)

	values := make([]uint32, n)
	for i := range values {
		values[i] = uint32(i*31) % (1 << width)
	}
	d := newDecoder(t, packBits(values, width, format.KindPCK), format.KindPCK, width, n)

	forward := sequence(n)
	fwd, fwdStats, err := d.DecodeWithStats(forward)
	require.NoError(t, err)

	reversed := slices.Clone(forward)
	slices.Reverse(reversed)
	rev, revStats, err := d.DecodeWithStats(reversed)
	require.NoError(t, err)

	got := slices.Clone(rev.Ints())
	slices.Reverse(got)
	require.Equal(t, fwd.Ints(), got)

	require.Equal(t, 0, fwdStats.Seeks)
	require.Positive(t, revStats.Seeks)

	// A scrambled order with duplicates still maps each position to its own value.
	scrambled := make([]int, 0, n+3)
	for i := 0; i < n; i++ {
		scrambled = append(scrambled, (i*37)%n+1)
	}
	scrambled = append(scrambled, 1, 1, n)

	mixed, err := d.Decode(scrambled)
	require.NoError(t, err)
	for i, p := range scrambled {
		require.Equal(t, fwd.Ints()[p-1], mixed.Ints()[i], "position %d", p)
	}
}

func TestDecode_TrailingPartialWord(t *testing.T) {
	values := []uint32{10, 20, 30, 40, 50, 60}
	data := packBits(values, 8, format.KindPCK)
	require.Len(t, data, 8)

	// The writer may drop the zero low half of the last word.
	d := newDecoder(t, data[:6], format.KindPCK, 8, len(values))
	v, err := d.Decode([]int{6, 5, 1})
	require.NoError(t, err)
	require.Equal(t, []int32{60, 50, 10}, v.Ints())
}

func TestDecode_FileShorterThanRecordCount(t *testing.T) {
	t.Run("bit-packed", func(t *testing.T) {
		d := newDecoder(t, []byte{1, 2, 3, 4}, format.KindBIN, 8, 8)
		v, err := d.Decode([]int{1, 6})
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
		require.Equal(t, 0, v.Len())
	})

	t.Run("fixed", func(t *testing.T) {
		d := newDecoder(t, fixedRecords(4, le32(1), le32(2))[:6], format.KindLNG, 4, 2)
		v, err := d.Decode([]int{1, 2})
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
		require.Nil(t, v.Ints())
	})
}

func TestDecode_MissingFile(t *testing.T) {
	meta, err := NewMeta(t.TempDir()+"/missing.dat", format.KindBIN, 3, 10)
	require.NoError(t, err)

	_, err = Decode(meta, []int{1})
	require.ErrorIs(t, err, errs.ErrFileAccess)
}

func TestDecode_UnreadableDataPath(t *testing.T) {
	for _, kind := range []format.ColumnKind{format.KindBIN, format.KindLNG} {
		t.Run(kind.String(), func(t *testing.T) {
			meta, err := NewMeta(t.TempDir(), kind, 4, 4)
			require.NoError(t, err)

			_, err = Decode(meta, []int{1})
			require.ErrorIs(t, err, errs.ErrFileAccess)
			require.NotErrorIs(t, err, errs.ErrOutOfBounds)
		})
	}
}

func TestDecode_FixedOrderIndependence(t *testing.T) {
	const n = 200

	records := make([][]byte, n)
	for i := range records {
		records[i] = le32(uint32(i * 17)) //nolint:gosec
	}
	d := newDecoder(t, fixedRecords(4, records...), format.KindLNG, 4, n)

	forward := sequence(n)
	fwd, fwdStats, err := d.DecodeWithStats(forward)
	require.NoError(t, err)

	reversed := slices.Clone(forward)
	slices.Reverse(reversed)
	rev, revStats, err := d.DecodeWithStats(reversed)
	require.NoError(t, err)

	got := slices.Clone(rev.Ints())
	slices.Reverse(got)
	require.Equal(t, fwd.Ints(), got)
	require.Equal(t, int32(17*(n-1)), fwd.Ints()[n-1])

	require.Equal(t, 0, fwdStats.Seeks)
	require.Positive(t, revStats.Seeks)
}

func TestDecode_FixedKinds(t *testing.T) {
	t.Run("INT", func(t *testing.T) {
		d := newDecoder(t, fixedRecords(2, le16(7), le16(math.MaxUint16), le16(0)), format.KindINT, 2, 3)
		v, stats, err := d.DecodeWithStats([]int{1, 2, 3, 4})
		require.NoError(t, err)
		require.Equal(t, []int32{7, math.MaxUint16, 0, format.NAInt32}, v.Ints())
		require.Equal(t, 0, stats.Seeks)
		require.Equal(t, int64(6), stats.BytesRead)
	})

	t.Run("INT padded records", func(t *testing.T) {
		data := []byte{0x2C, 0x01, 0xEE, 0xEE, 0x05, 0x00, 0xEE, 0xEE}
		d := newDecoder(t, data, format.KindINT, 4, 2)
		v, err := d.Decode([]int{2, 1})
		require.NoError(t, err)
		require.Equal(t, []int32{5, 300}, v.Ints())
	})

	t.Run("LNG", func(t *testing.T) {
		d := newDecoder(t, fixedRecords(4, le32(5), le32(0xFFFFFFFB), le32(0x80000000)), format.KindLNG, 4, 3)
		v, err := d.Decode([]int{3, 2, 1})
		require.NoError(t, err)
		require.Equal(t, []int32{format.NAInt32, -5, 5}, v.Ints())
	})

	t.Run("REAL", func(t *testing.T) {
		na := format.NAFloat64()
		d := newDecoder(t, fixedRecords(8, f64(1.5), f64(-2.25), f64(na)), format.KindREAL, 8, 3)
		v, stats, err := d.DecodeWithStats([]int{1, 2, 3, 0})
		require.NoError(t, err)
		require.Nil(t, v.Ints())
		require.Equal(t, 4, v.Len())
		require.InDelta(t, 1.5, v.Floats()[0], 0)
		require.InDelta(t, -2.25, v.Floats()[1], 0)
		require.True(t, v.IsNA(2))
		require.True(t, v.IsNA(3))
		require.False(t, v.IsNA(0))
		require.Equal(t, 2, stats.NA)
	})

	t.Run("CHR", func(t *testing.T) {
		data := []byte("ab    hello\x00      x y   ab\x00cd ")
		d := newDecoder(t, data, format.KindCHR, 6, 5)
		v, err := d.Decode([]int{1, 2, 3, 4, 0, 5})
		require.NoError(t, err)
		require.Equal(t, []Text{
			{Value: "ab"},
			{Value: "hello"},
			{Value: ""},
			{Value: "x y"},
			NAText,
			{Value: "ab"},
		}, v.Texts())
		require.False(t, v.IsNA(2))
		require.True(t, v.IsNA(4))
	})
}

func TestDecode_Compressed(t *testing.T) {
	values := make([]uint32, 500)
	for i := range values {
		values[i] = uint32(i % 11)
	}
	raw := packBits(values, 4, format.KindBIN)

	plain := newDecoder(t, raw, format.KindBIN, 4, len(values))
	positions := []int{500, 1, 250, 251, 2, 600}
	want, err := plain.Decode(positions)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			packed, err := codec.Compress(raw)
			require.NoError(t, err)

			d := newDecoder(t, packed, format.KindBIN, 4, len(values), WithCompression(ct))
			got, err := d.Decode(positions)
			require.NoError(t, err)
			require.Equal(t, want.Ints(), got.Ints())
		})
	}
}

func TestDecode_Levels(t *testing.T) {
	levels, err := factor.NewLevelTable([]int32{0, 5, 9}, []string{"none", "some", "all"})
	require.NoError(t, err)

	values := []uint32{0, 5, 9, 5, 3}
	d := newDecoder(t, packBits(values, 4, format.KindBIN), format.KindBIN, 4, len(values), WithLevels(levels))
	require.Same(t, levels, d.Levels())

	v, stats, err := d.DecodeWithStats([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 2, format.NAInt32, format.NAInt32}, v.Ints())
	require.Equal(t, 2, stats.NA)

	f, err := v.Factor()
	require.NoError(t, err)
	label, ok := f.Label(2)
	require.True(t, ok)
	require.Equal(t, "all", label)
	_, ok = f.Label(4)
	require.False(t, ok)
}

func TestDecode_LevelsOnLNG(t *testing.T) {
	levels, err := factor.NewLevelTable([]int32{-5, 5}, nil)
	require.NoError(t, err)

	d := newDecoder(t, fixedRecords(4, le32(5), le32(0xFFFFFFFB)), format.KindLNG, 4, 2, WithLevels(levels))
	v, err := d.Decode([]int{1, 2})
	require.NoError(t, err)
	require.Equal(t, []int32{2, 1}, v.Ints())

	_, err = v.Factor()
	require.ErrorIs(t, err, errs.ErrInvalidLevelTable)
}

func TestNewDecoder_Options(t *testing.T) {
	path := writeFile(t, []byte("abc"))
	chr, err := NewMeta(path, format.KindCHR, 3, 1)
	require.NoError(t, err)

	levels, err := factor.NewLevelTable([]int32{1}, []string{"one"})
	require.NoError(t, err)

	_, err = NewDecoder(chr, WithLevels(levels))
	require.ErrorIs(t, err, errs.ErrInvalidColumn)

	d, err := NewDecoder(chr, WithLevels(nil))
	require.NoError(t, err)
	require.Nil(t, d.Levels())

	_, err = NewDecoder(chr, WithCompression(format.CompressionType(99)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = NewDecoder(chr, WithLogger(nil))
	require.Error(t, err)

	_, err = NewDecoder(chr, WithReadBufferSize(1))
	require.Error(t, err)

	_, err = NewDecoder(Meta{DataPath: path, Kind: format.KindCHR})
	require.ErrorIs(t, err, errs.ErrInvalidColumn)

	v, err := d.Decode([]int{1})
	require.NoError(t, err)
	require.Equal(t, []Text{{Value: "abc"}}, v.Texts())

	_, err = v.Factor()
	require.ErrorIs(t, err, errs.ErrInvalidLevelTable)
}

func TestDecode_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	d := newDecoder(t, packBits([]uint32{1, 2, 3}, 2, format.KindBIN), format.KindBIN, 2, 3, WithLogger(logger))
	_, err := d.Decode([]int{1, 2, 9})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `msg="decoded column"`)
	require.Contains(t, out, "kind=BIN")
	require.Contains(t, out, "requested=3")
	require.Contains(t, out, "na=1")
}

func TestDecode_SmallReadBuffer(t *testing.T) {
	values := make([]uint32, 300)
	for i := range values {
		values[i] = uint32(i) & 0x3FF
	}
	data := packBits(values, 10, format.KindBIN)

	small := newDecoder(t, data, format.KindBIN, 10, len(values), WithReadBufferSize(MinReadBufferSize))
	large := newDecoder(t, data, format.KindBIN, 10, len(values))

	positions := []int{300, 3, 150, 151, 152, 1, 299}
	a, err := small.Decode(positions)
	require.NoError(t, err)
	b, err := large.Decode(positions)
	require.NoError(t, err)
	require.Equal(t, b.Ints(), a.Ints())
	require.Equal(t, []int32{299, 2, 149, 150, 151, 0, 298}, a.Ints())
}

func TestDecoder_ConcurrentDecode(t *testing.T) {
	values := make([]uint32, 1000)
	for i := range values {
		values[i] = uint32(i*13) & 0xFFF
	}
	d := newDecoder(t, packBits(values, 12, format.KindPCK), format.KindPCK, 12, len(values))

	want, err := d.Decode(sequence(len(values)))
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()

			positions := make([]int, 0, len(values))
			for i := range values {
				positions = append(positions, (i+offset*97)%len(values)+1)
			}

			got, err := d.Decode(positions)
			if err != nil {
				errCh <- err
				return
			}
			for i, p := range positions {
				if got.Ints()[i] != want.Ints()[p-1] {
					errCh <- fmt.Errorf("worker %d: position %d: got %d, want %d", offset, p, got.Ints()[i], want.Ints()[p-1])
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
}

func BenchmarkDecode_BitPacked(b *testing.B) {
	values := make([]uint32, 100_000)
	for i := range values {
		values[i] = uint32(i) & 0x1FF
	}
	d := newDecoder(b, packBits(values, 9, format.KindBIN), format.KindBIN, 9, len(values))
	positions := sequence(len(values))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := d.Decode(positions); err != nil {
			b.Fatal(err)
		}
	}
}
