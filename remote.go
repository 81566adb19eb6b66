package tactile

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// RemoteFrame is one pointer notification received from a remote host, such
// as a browser page streaming touch events over a websocket.
type RemoteFrame struct {
	Kind    BatchKind
	T       time.Duration
	Samples []PointerSample
}

// DecodeRemoteFrame parses a JSON frame of the form
//
//	{"type":"move","t":1234.5,"pointers":[{"id":1,"x":10,"y":20}]}
//
// where t is the sender's monotonic clock in milliseconds. Cancel frames may
// omit pointers.
func DecodeRemoteFrame(data []byte) (RemoteFrame, error) {
	if !gjson.ValidBytes(data) {
		return RemoteFrame{}, fmt.Errorf("decode remote frame: invalid json")
	}
	root := gjson.ParseBytes(data)

	var f RemoteFrame
	switch typ := root.Get("type").String(); typ {
	case "down":
		f.Kind = BatchDown
	case "move":
		f.Kind = BatchMove
	case "up":
		f.Kind = BatchUp
	case "cancel":
		f.Kind = BatchCancel
	default:
		return RemoteFrame{}, fmt.Errorf("decode remote frame: unknown type %q", typ)
	}

	t := root.Get("t")
	if !t.Exists() {
		return RemoteFrame{}, fmt.Errorf("decode remote frame: missing t")
	}
	f.T = time.Duration(t.Float() * float64(time.Millisecond))

	for _, p := range root.Get("pointers").Array() {
		f.Samples = append(f.Samples, PointerSample{
			ID: int(p.Get("id").Int()),
			X:  p.Get("x").Float(),
			Y:  p.Get("y").Float(),
			T:  f.T,
		})
	}
	if f.Kind != BatchCancel && len(f.Samples) == 0 {
		return RemoteFrame{}, fmt.Errorf("decode remote frame: %s without pointers", f.Kind)
	}
	return f, nil
}

// Apply forwards the frame to in.
func (f RemoteFrame) Apply(in *Ingestor) {
	switch f.Kind {
	case BatchDown:
		in.Down(f.Samples...)
	case BatchMove:
		in.Move(f.Samples...)
	case BatchUp:
		in.Up(f.Samples...)
	case BatchCancel:
		in.Cancel(f.T)
	}
}
