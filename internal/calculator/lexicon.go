package calculator

// polarity is the immutable token weight table used for headline
// classification. It is built once at startup and never mutated, keeping
// classification a pure function of article text. Tokens are lowercase;
// weights are +1/-1 so net counts stay interpretable.
var polarity = map[string]int{
	// positive
	"beat":      1,
	"beats":     1,
	"bullish":   1,
	"buyback":   1,
	"contract":  1,
	"dividend":  1,
	"expansion": 1,
	"gain":      1,
	"gains":     1,
	"growth":    1,
	"jump":      1,
	"jumps":     1,
	"profit":    1,
	"rally":     1,
	"record":    1,
	"recovery":  1,
	"rise":      1,
	"rises":     1,
	"soar":      1,
	"soars":     1,
	"strong":    1,
	"surge":     1,
	"surges":    1,
	"upgrade":   1,
	"upgraded":  1,
	"win":       1,
	"wins":      1,

	// negative
	"bearish":    -1,
	"crash":      -1,
	"cut":        -1,
	"cuts":       -1,
	"decline":    -1,
	"declines":   -1,
	"default":    -1,
	"downgrade":  -1,
	"downgraded": -1,
	"drop":       -1,
	"drops":      -1,
	"fall":       -1,
	"falls":      -1,
	"fraud":      -1,
	"lawsuit":    -1,
	"loss":       -1,
	"losses":     -1,
	"miss":       -1,
	"misses":     -1,
	"penalty":    -1,
	"plunge":     -1,
	"plunges":    -1,
	"probe":      -1,
	"recall":     -1,
	"slump":      -1,
	"slumps":     -1,
	"weak":       -1,
}
