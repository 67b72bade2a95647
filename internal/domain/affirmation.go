package domain

import "math/rand"

// Affirmations is the fixed caption pool. Every saved manifestation carries one
// of these strings verbatim.
var Affirmations = []string{
	"I am becoming the person I'm meant to be",
	"Every day, I move closer to my dreams",
	"I deserve all the good things coming my way",
	"My potential is limitless",
	"I am worthy of success and happiness",
	"I attract abundance into my life",
	"My dreams are manifesting into reality",
	"I am confident, capable, and strong",
	"I trust the journey of my transformation",
	"Everything I need is already within me",
}

// RandomAffirmation picks a caption uniformly from the pool.
func RandomAffirmation() string {
	return Affirmations[rand.Intn(len(Affirmations))]
}

// IsAffirmation reports whether s is a member of the fixed pool.
func IsAffirmation(s string) bool {
	for _, a := range Affirmations {
		if a == s {
			return true
		}
	}
	return false
}
