package game

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform values in [0,1). The engine consumes one value per
// rarity resolution and one per pool pick, so tests can script exact
// outcomes.
type Source interface {
	Uniform() float64
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSource() Source {
	return &lockedSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *lockedSource) Uniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
