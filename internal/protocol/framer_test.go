package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestFramerRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 36, 1024} {
		var out bytes.Buffer
		buf := make([]byte, PrefixSize+n)
		for i := 0; i < n; i++ {
			buf[PrefixSize+i] = byte(i * 7)
		}

		if err := NewFramer(&out).WriteFrame(buf, n); err != nil {
			t.Fatalf("WriteFrame(%d bytes): %v", n, err)
		}
		got := out.Bytes()
		if len(got) != PrefixSize+n {
			t.Fatalf("wrote %d bytes, want %d", len(got), PrefixSize+n)
		}
		if decoded := binary.BigEndian.Uint32(got); decoded != uint32(n) {
			t.Errorf("prefix decodes to %d, want %d", decoded, n)
		}
		if !bytes.Equal(got[PrefixSize:], buf[PrefixSize:]) {
			t.Errorf("payload altered in transit")
		}
	}
}

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return w.limit, nil
	}
	return len(p), nil
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestFramerWriteFailures(t *testing.T) {
	buf := make([]byte, PrefixSize+16)

	if err := NewFramer(&shortWriter{limit: 10}).WriteFrame(buf, 16); err == nil {
		t.Error("short write not reported")
	}
	if err := NewFramer(failWriter{}).WriteFrame(buf, 16); err == nil {
		t.Error("failed write not reported")
	}
}

func TestCapabilityRoundTrip(t *testing.T) {
	want := &Capability{
		BackendName:   "pattern",
		DisplayID:     2,
		DisplayWidth:  1920,
		DisplayHeight: 1080,
		CaptureWidth:  640,
		CaptureHeight: 480,
	}

	buf := make([]byte, CapabilitySize)
	if n := PutCapability(buf, want); n != CapabilitySize {
		t.Fatalf("PutCapability = %d, want %d", n, CapabilitySize)
	}
	got, err := ParseCapability(buf)
	if err != nil {
		t.Fatalf("ParseCapability: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestCapabilityNameTruncated(t *testing.T) {
	buf := make([]byte, CapabilitySize)
	PutCapability(buf, &Capability{BackendName: "a-very-long-backend-name"})
	got, err := ParseCapability(buf)
	if err != nil {
		t.Fatalf("ParseCapability: %v", err)
	}
	if want := "a-very-long-back"; got.BackendName != want {
		t.Errorf("BackendName = %q, want %q", got.BackendName, want)
	}
}

func TestCapabilityBadSize(t *testing.T) {
	if _, err := ParseCapability(make([]byte, 35)); err == nil {
		t.Error("undersized payload accepted")
	}
}
