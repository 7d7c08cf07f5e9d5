package game

const (
	// BasePoints is awarded for every pair.
	BasePoints = 10
	// UnlockPoints is awarded per tile a pair opens.
	UnlockPoints = 2
)

// Points scores a pair that opened unlocked tiles.
func Points(unlocked int) int {
	if unlocked < 0 {
		unlocked = 0
	}
	return BasePoints + UnlockPoints*unlocked
}
