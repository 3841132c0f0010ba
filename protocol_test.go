package main

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestChainToWireRounding(t *testing.T) {
	segs := []*Segment{
		NewSegment(mgl64.Vec3{1.234, 0, 5.678}, HeadingUp.Rotation()),
		NewSegment(mgl64.Vec3{-0.55, 0, 2.04}, HeadingRight.Rotation()),
	}
	wire := chainToWire(NewChain(segs))

	if len(wire) != 2 {
		t.Fatalf("triplets=%d want=2", len(wire))
	}
	head := wire[0]
	if head[0] != 1.2 || head[1] != 5.7 {
		t.Fatalf("head=[%v %v] want=[1.2 5.7]", head[0], head[1])
	}
	if head[2] != 0 {
		t.Fatalf("head yaw=%v want=0 for up", head[2])
	}
	body := wire[1]
	if body[2] != 1.6 {
		t.Fatalf("body yaw=%v want=1.6 (π/2 rounded)", body[2])
	}
}

func TestCompactMessageKeys(t *testing.T) {
	data, err := json.Marshal(SceneMsg{Type: MsgScene, Scene: "loading", Progress: 0.4})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"t":"c","s":"loading","p":0.4}`
	if string(data) != want {
		t.Fatalf("json=%s want=%s", data, want)
	}
}

func TestClientMessageParsing(t *testing.T) {
	var msg ClientMessage
	if err := json.Unmarshal([]byte(`{"t":"i","x":1,"y":-1}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != MsgInput || msg.X != 1 || msg.Y != -1 {
		t.Fatalf("msg=%+v want t=i x=1 y=-1", msg)
	}
}
