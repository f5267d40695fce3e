package bind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lineproto/errs"
	"github.com/arloliu/lineproto/point"
)

// cpuSample exercises the binding contract with static types that need
// coercion on the way back in: Idle is stored as a float field but read as
// an int64, and Online round-trips through a boolean.
type cpuSample struct {
	Host   string
	Usage  float64
	Idle   int64
	Online bool
	Time   int64
}

func (s cpuSample) MarshalPoint(p *point.Point) error {
	if s.Host == "" {
		return errors.New("host is required")
	}

	p.Measurement = "cpu"
	p.AddTag("host", point.TextValue(s.Host))
	p.AddField("usage", point.FloatValue(s.Usage))
	p.AddField("idle", point.FloatValue(float64(s.Idle)))
	p.AddField("online", point.BooleanValue(s.Online))
	p.SetTimestamp(s.Time)

	return nil
}

func (s *cpuSample) UnmarshalPoint(p point.Point) error {
	host, ok := p.Tag("host")
	if !ok {
		return errors.New("missing host tag")
	}

	var err error
	if s.Host, err = host.Text(); err != nil {
		return fmt.Errorf("host tag: %w", err)
	}

	if v, ok := p.Field("usage"); ok {
		if s.Usage, err = v.Float64(); err != nil {
			return fmt.Errorf("usage field: %w", err)
		}
	}
	if v, ok := p.Field("idle"); ok {
		if s.Idle, err = v.Int64(); err != nil {
			return fmt.Errorf("idle field: %w", err)
		}
	}
	if v, ok := p.Field("online"); ok {
		if s.Online, err = v.Bool(); err != nil {
			return fmt.Errorf("online field: %w", err)
		}
	}
	if p.Timestamp != nil {
		s.Time = *p.Timestamp
	}

	return nil
}

func TestMarshal(t *testing.T) {
	in := cpuSample{Host: "server01", Usage: 23.5, Idle: 76, Online: true, Time: 1577836800}

	p, err := Marshal(in)
	require.NoError(t, err)
	require.Equal(t, "cpu", p.Measurement)

	v, ok := p.Field("idle")
	require.True(t, ok)
	require.Equal(t, point.KindFloat, v.Kind())
}

func TestMarshal_Error(t *testing.T) {
	_, err := Marshal(cpuSample{})
	require.ErrorContains(t, err, "host is required")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := cpuSample{Host: "server01", Usage: 23.5, Idle: 76, Online: true, Time: 1577836800}

	line, err := Encode(in)
	require.NoError(t, err)
	require.Equal(t, `cpu,host=server01 usage=23.5,idle=76.0,online=true 1577836800`, line)

	var out cpuSample
	require.NoError(t, Decode(line, &out))
	require.Equal(t, in, out)
}

func TestDecode_CoercionFailure(t *testing.T) {
	// idle is a float with a fractional part, which cannot coerce to int64.
	var out cpuSample
	err := Decode(`cpu,host=server01 idle=76.5`, &out)
	require.ErrorContains(t, err, "idle field")

	var cerr *errs.CoercionError
	require.ErrorAs(t, err, &cerr)
}

func TestDecode_EmptyInput(t *testing.T) {
	var out cpuSample
	err := Decode("# nothing here\n", &out)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestDecode_SyntaxErrorPassedThrough(t *testing.T) {
	var out cpuSample
	err := Decode("cpu,host=server01 idle=", &out)

	var syn *errs.SyntaxError
	require.ErrorAs(t, err, &syn)
}
