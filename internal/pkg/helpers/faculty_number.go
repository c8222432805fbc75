package helpers

import (
	"fmt"
	"math/rand"
)

const (
	facultyNumberPrefix = "F"
	facultyNumberDigits = 6
)

// GenerateFacultyNumber produces a candidate faculty number such as
// "F048291". Uniqueness is enforced by the caller against the student store.
func GenerateFacultyNumber() string {
	max := 1
	for i := 0; i < facultyNumberDigits; i++ {
		max *= 10
	}
	return fmt.Sprintf("%s%0*d", facultyNumberPrefix, facultyNumberDigits, rand.Intn(max))
}
