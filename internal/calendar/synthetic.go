package calendar

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Synthetic generates placeholder daily samples for the year before today,
// for use when no real contribution data is available. The series is seeded
// from the login, so the same login always produces the same samples. It is
// up to the caller to pass the result to Build; Build itself never invents
// data.
func Synthetic(login string, today time.Time) map[string]int {
	h := fnv.New64a()
	h.Write([]byte(login))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	samples := make(map[string]int, 365)
	day := midnight(today).AddDate(0, 0, -364)
	for !day.After(midnight(today)) {
		samples[day.Format(DateLayout)] = rng.Intn(10)
		day = day.AddDate(0, 0, 1)
	}
	return samples
}
