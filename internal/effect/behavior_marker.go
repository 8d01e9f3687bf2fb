package effect

const KindMarker = "Marker"

// Marker flags its host with a named condition while active.
// Params: "flag" (e.g. "stunned").
type Marker struct {
	flag string
}

func NewMarker(params map[string]string) Behavior {
	return &Marker{flag: params["flag"]}
}

func (b *Marker) Kind() string             { return KindMarker }
func (b *Marker) Process(*Effect, float64) {}
func (b *Marker) Flag() string             { return b.flag }
