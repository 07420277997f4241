package message_test

import (
	"bytes"
	"testing"

	"github.com/sabouaram/linxipc/message"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	tests := []struct {
		nam     string
		reqID   uint32
		payload []byte
	}{
		{"empty payload", 1, nil},
		{"short payload", 2, []byte{0x41, 0x42, 0x43}},
		{"max uint32 req id", 0xFFFFFFFF, []byte("hello")},
	}

	for _, tc := range tests {
		t.Run(tc.nam, func(t *testing.T) {
			m := message.New(tc.reqID, tc.payload)
			buf := make([]byte, m.Size())

			n := m.Serialize(buf)
			if n != m.Size() {
				t.Fatalf("Serialize() = %d, want %d", n, m.Size())
			}

			got, ok := message.Deserialize(buf)
			if !ok {
				t.Fatal("Deserialize() ok = false, want true")
			}
			if got.ReqID != tc.reqID {
				t.Errorf("ReqID = %d, want %d", got.ReqID, tc.reqID)
			}
			if !bytes.Equal(got.Payload, tc.payload) {
				t.Errorf("Payload = %v, want %v", got.Payload, tc.payload)
			}
		})
	}
}

func TestSerializeBufferTooSmall(t *testing.T) {
	m := message.New(1, []byte("abcdef"))
	buf := make([]byte, m.Size()-1)

	if n := m.Serialize(buf); n != 0 {
		t.Errorf("Serialize() with short buffer = %d, want 0", n)
	}
}

func TestDeserializeTruncatedFrame(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3} {
		if _, ok := message.Deserialize(make([]byte, n)); ok {
			t.Errorf("Deserialize(%d bytes) ok = true, want false", n)
		}
	}
}

func TestDeserializeIsZeroCopy(t *testing.T) {
	buf := make([]byte, message.HeaderSize+3)
	m := message.New(5, []byte{1, 2, 3})
	m.Serialize(buf)

	got, _ := message.Deserialize(buf)
	buf[message.HeaderSize] = 99

	if got.Payload[0] != 99 {
		t.Error("Deserialize payload does not alias the source buffer")
	}
}

func TestFromValue(t *testing.T) {
	type ping struct {
		Seq   uint32
		Flags uint8
	}

	v := ping{Seq: 42, Flags: 1}
	m := message.FromValue(7, v)

	if m.ReqID != 7 {
		t.Errorf("ReqID = %d, want 7", m.ReqID)
	}
	if len(m.Payload) == 0 {
		t.Error("FromValue produced empty payload")
	}
}
