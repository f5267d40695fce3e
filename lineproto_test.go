package lineproto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lineproto/compress"
	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
)

func samplePoints() []point.Point {
	cpu := point.New("cpu")
	cpu.AddTag("host", point.TextValue("server01"))
	cpu.AddTag("region", point.TextValue("us-west"))
	cpu.AddField("usage", point.FloatValue(23.5))
	cpu.AddField("idle", point.IntegerValue(76))
	cpu.SetTimestamp(1577836800)

	mem := point.New("mem")
	mem.AddField("free", point.UnsignedValue(1024))
	mem.AddField("note", point.TextValue(`low on "swap", paging to C:\pagefile`))

	disk := point.New("disk name,eq=1")
	disk.AddTag("path", point.TextValue("/var/lib data"))
	disk.AddField("full", point.BooleanValue(false))
	disk.SetTimestamp(-42)

	return []point.Point{cpu, mem, disk}
}

func TestEncode(t *testing.T) {
	line, err := Encode(samplePoints()[0])
	require.NoError(t, err)
	require.Equal(t, "cpu,host=server01,region=us-west usage=23.5,idle=76i 1577836800", line)
}

func TestDecode(t *testing.T) {
	p, err := Decode("cpu usage=23.5\nmem free=1024i\n")
	require.NoError(t, err)
	require.Equal(t, "cpu", p.Measurement)

	_, err = Decode("# comments only\n")
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestDecodeAll_SingleRecord(t *testing.T) {
	points, err := DecodeAll("metric field1=1i")
	require.NoError(t, err)
	require.Len(t, points, 1)
}

func TestDecodeAll_FailFast(t *testing.T) {
	points, err := DecodeAll("ok f=1i\nbroken\n")
	require.Error(t, err)
	require.Nil(t, points)
}

func TestRoundTrip(t *testing.T) {
	in := samplePoints()

	text, err := EncodeAll(in)
	require.NoError(t, err)

	out, err := DecodeAll(text)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		require.True(t, in[i].Equal(out[i]), "point %d: %v != %v", i, in[i], out[i])
	}

	// The canonical form is a fixed point: re-encoding the decoded points
	// reproduces it byte for byte.
	again, err := EncodeAll(out)
	require.NoError(t, err)
	require.Equal(t, text, again)
}

func TestStreaming(t *testing.T) {
	in := samplePoints()

	var buf bytes.Buffer
	require.NoError(t, EncodeTo(&buf, in...))

	dec := NewDecoder(&buf)

	var out []point.Point
	for p, err := range dec.All() {
		require.NoError(t, err)
		out = append(out, p)
	}

	require.Len(t, out, len(in))
	for i := range in {
		require.True(t, in[i].Equal(out[i]))
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	in := samplePoints()

	for _, typ := range []compress.Type{compress.None, compress.Zstd, compress.S2, compress.LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			payload, err := EncodeCompressed(in, typ)
			require.NoError(t, err)

			out, err := DecodeCompressed(payload, typ)
			require.NoError(t, err)
			require.Len(t, out, len(in))
			for i := range in {
				require.True(t, in[i].Equal(out[i]))
			}
		})
	}
}

func TestEncodeCompressed_InvalidType(t *testing.T) {
	_, err := EncodeCompressed(samplePoints(), compress.Type(0x7f))
	require.Error(t, err)
}
