package point

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoint_Builders(t *testing.T) {
	p := New("cpu")
	p.AddTag("host", TextValue("server01")).
		AddField("usage", FloatValue(23.5)).
		SetTimestamp(1577836800)

	require.Equal(t, "cpu", p.Measurement)

	v, ok := p.Tag("host")
	require.True(t, ok)
	require.True(t, v.Equal(TextValue("server01")))

	v, ok = p.Field("usage")
	require.True(t, ok)
	require.True(t, v.Equal(FloatValue(23.5)))

	_, ok = p.Field("missing")
	require.False(t, ok)

	require.NotNil(t, p.Timestamp)
	require.Equal(t, int64(1577836800), *p.Timestamp)
}

func TestPoint_HasFields(t *testing.T) {
	p := New("cpu")
	require.False(t, p.HasFields())

	p.AddField("idle", Absent)
	require.False(t, p.HasFields())

	p.AddField("usage", FloatValue(1))
	require.True(t, p.HasFields())
}

func TestPoint_Equal_IgnoresAbsentEntries(t *testing.T) {
	a := New("cpu")
	a.AddField("gone", Absent)
	a.AddField("usage", FloatValue(1))

	b := New("cpu")
	b.AddField("usage", FloatValue(1))

	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))

	b.AddTag("host", TextValue("x"))
	require.False(t, a.Equal(b))
}

func TestPoint_Equal_Timestamp(t *testing.T) {
	a := New("cpu")
	a.AddField("usage", FloatValue(1))
	b := New("cpu")
	b.AddField("usage", FloatValue(1))

	require.True(t, a.Equal(b))

	a.SetTimestamp(1)
	require.False(t, a.Equal(b))

	b.SetTimestamp(1)
	require.True(t, a.Equal(b))

	b.SetTimestamp(2)
	require.False(t, a.Equal(b))
}

func TestPoint_Hash(t *testing.T) {
	a := New("cpu")
	a.AddTag("host", TextValue("server01"))
	a.AddField("usage", FloatValue(23.5))
	a.SetTimestamp(1577836800)

	b := New("cpu")
	b.AddTag("host", TextValue("server01"))
	b.AddField("hole", Absent) // absent entries do not contribute
	b.AddField("usage", FloatValue(23.5))
	b.SetTimestamp(1577836800)

	require.Equal(t, a.Hash(), b.Hash())

	c := New("cpu")
	c.AddTag("host", TextValue("server02"))
	c.AddField("usage", FloatValue(23.5))
	c.SetTimestamp(1577836800)

	require.NotEqual(t, a.Hash(), c.Hash())

	// Key/value boundaries are framed: shifting a byte between the key and
	// the value must change the hash.
	d := New("cpu")
	d.AddTag("hosts", TextValue("erver01"))
	d.AddField("usage", FloatValue(23.5))
	d.SetTimestamp(1577836800)

	require.NotEqual(t, a.Hash(), d.Hash())
}
