package topic

import "math/rand/v2"

// starters is the pool used when the user asks for a random topic.
var starters = []string{
	"Entropy",
	"Photosynthesis",
	"The Silk Road",
	"Black Holes",
	"Game Theory",
	"Plate Tectonics",
	"The Printing Press",
	"Neural Networks",
	"Fermentation",
	"The Antikythera Mechanism",
	"Bioluminescence",
	"Cryptography",
	"The Gulf Stream",
	"Mycorrhizal Networks",
	"The Byzantine Empire",
	"Superconductivity",
	"Birdsong",
	"The Hanseatic League",
	"Tidal Locking",
	"Umami",
}

// Random returns a random starter topic.
func Random() string {
	return starters[rand.IntN(len(starters))]
}
