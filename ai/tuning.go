package ai

// Tuning weights the adversarial search.
type Tuning struct {
	// Root move value: UnlockWeight*unlocked + Discount*lookahead.
	UnlockWeight float64
	Discount     float64

	// Leaf evaluation.
	MobilityWeight float64
	RaceWeight     float64
	OpenWeight     float64
	FinishBonus    float64

	// Width caps how many candidates are expanded per ply, best unlock first.
	Width int
	// TopK is how many of the best root moves the final pick is drawn from.
	TopK int
	// WideThreshold drops one ply when the root has more legal moves than this.
	WideThreshold int
}

const finishBonus = 1000.0

// DefaultTuning scales unlock value by 10 and discounts future value by 0.7.
// Five candidates are expanded per ply and the pick is drawn from the best three.
var DefaultTuning = Tuning{
	UnlockWeight:   10,
	Discount:       0.7,
	MobilityWeight: 2,
	RaceWeight:     1,
	OpenWeight:     0.5,
	FinishBonus:    finishBonus,
	Width:          5,
	TopK:           3,
	WideThreshold:  20,
}
