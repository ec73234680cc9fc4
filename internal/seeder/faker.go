package seeder

import (
	"math/rand"
	"time"

	"github.com/Rana718/petseed/internal/config"
	"github.com/Rana718/petseed/internal/pets"
)

var firstNames = []string{
	"Victoria", "Michael", "Kristie", "Ronald", "Mark", "Shawna", "James", "Linda",
	"Robert", "Patricia", "David", "Jennifer", "William", "Elizabeth", "Richard", "Barbara",
	"Joseph", "Susan", "Thomas", "Jessica", "Charles", "Sarah", "Daniel", "Karen",
	"Matthew", "Nancy", "Anthony", "Lisa", "Donald", "Betty", "Steven", "Margaret",
	"Paul", "Sandra", "Andrew", "Ashley", "Joshua", "Dorothy", "Kenneth", "Kimberly",
	"Kevin", "Emily", "Brian", "Donna", "George", "Michelle", "Timothy", "Carol",
}

type DataGenerator struct {
	rand *rand.Rand
}

// NewDataGenerator returns a generator seeded with seed, or with the clock
// when seed is zero.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{rand: rand.New(rand.NewSource(seed))}
}

func (g *DataGenerator) FirstName() string {
	return firstNames[g.rand.Intn(len(firstNames))]
}

// Species picks one entry of set, falling back to the default species.
func (g *DataGenerator) Species(set []string) string {
	if len(set) == 0 {
		set = config.DefaultSpecies
	}
	return set[g.rand.Intn(len(set))]
}

func (g *DataGenerator) Pet(species []string) pets.Pet {
	return pets.Pet{Name: g.FirstName(), Species: g.Species(species)}
}

func (g *DataGenerator) Pets(n int, species []string) []pets.Pet {
	list := make([]pets.Pet, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, g.Pet(species))
	}
	return list
}

// FixedPets is the hand-picked set used instead of random data.
func FixedPets() []pets.Pet {
	return []pets.Pet{
		{Name: "Fido", Species: "Dog"},
		{Name: "Whiskers", Species: "Cat"},
		{Name: "Hermie", Species: "Hamster"},
		{Name: "Slither", Species: "Snake"},
	}
}
