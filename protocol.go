package main

// Protocol uses single-character JSON keys to minimize wire size.
// All coordinates are rounded to 1 decimal place.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "i" = input   {"t":"i","x":1,"y":0}   (x,y ∈ {-1,0,1}, raw axis input)
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","r":24}          (r=arena radius)
//     "c" = scene   {"t":"c","s":"loading","p":0.4}    (p=load progress)
//     "s" = state   {"t":"s","g":[segments],"h":"up","i":[items]}
//     "e" = error   {"t":"e","m":"reason"}
//
// Segments are encoded as flat [x,z,yaw] float64 triplets.
// ItemDTO: {"i":"id","x":1.0,"z":2.0,"c":"#f00"}

// Message type identifiers — single-char for compact protocol
const (
	MsgInput   = "i"
	MsgWelcome = "w"
	MsgScene   = "c"
	MsgState   = "s"
	MsgError   = "e"
)

// ClientMessage is the incoming message from the attached client.
// {"t":"i","x":1,"y":0}
type ClientMessage struct {
	Type string `json:"t"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// WelcomeMsg is sent immediately on WebSocket attach.
// {"t":"w","i":"uuid","r":24}
type WelcomeMsg struct {
	Type        string  `json:"t"`
	ID          string  `json:"i"`
	ArenaRadius float64 `json:"r"`
}

// SceneMsg announces a scene transition, with load progress while loading.
// {"t":"c","s":"loading","p":0.4}
type SceneMsg struct {
	Type     string  `json:"t"`
	Scene    string  `json:"s"`
	Progress float64 `json:"p"`
}

// ItemDTO is a collectible in wire form.
// {"i":"id","x":1.0,"z":2.0,"c":"#f00"}
type ItemDTO struct {
	ID    string  `json:"i"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Color string  `json:"c"`
}

// StateMsg is the per-tick state update. Segments are [x,z,yaw] triplets,
// head first; h is the head's heading name.
// {"t":"s","g":[[x,z,yaw],...],"h":"up","i":[items]}
type StateMsg struct {
	Type     string       `json:"t"`
	Segments [][3]float64 `json:"g"`
	Heading  string       `json:"h"`
	Items    []ItemDTO    `json:"i"`
}

// ErrorMsg carries a human-readable refusal before the socket closes.
// {"t":"e","m":"reason"}
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// chainToWire converts the chain to rounded [x,z,yaw] triplets.
func chainToWire(c *Chain) [][3]float64 {
	out := make([][3]float64, c.Len())
	for i := 0; i < c.Len(); i++ {
		seg := c.At(i)
		out[i] = [3]float64{
			roundTo1(seg.Position.X()),
			roundTo1(seg.Position.Z()),
			roundTo1(yawOf(seg.Forward())),
		}
	}
	return out
}
