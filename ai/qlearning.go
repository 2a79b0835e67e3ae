package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-deluxe/game/types"
)

type Action int

const (
	Up Action = iota
	Right
	Down
	Left
)

func (a Action) Direction() types.Direction {
	switch a {
	case Up:
		return types.UP
	case Right:
		return types.RIGHT
	case Down:
		return types.DOWN
	case Left:
		return types.LEFT
	}
	return types.NONE
}

func (a Action) Opposite() Action {
	return (a + 2) % 4
}

// Rewards for a single transition
const (
	RewardFood    = 1.0
	RewardDeath   = -1.0
	RewardDanger  = -1.0
	RewardCloser  = 0.5
	RewardFarther = -0.3
)

type QTable map[string]map[Action]float64

// QLearning is a tabular epsilon-greedy agent. It is safe to save while
// another goroutine keeps learning.
type QLearning struct {
	ID           string
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int

	rng *rand.Rand
	mu  sync.RWMutex
}

// snapshot is the on-disk form of an agent
type snapshot struct {
	ID          string `json:"id"`
	GamesPlayed int    `json:"gamesPlayed"`
	QTable      QTable `json:"qtable"`
}

func NewQLearning(seed uint64) *QLearning {
	return &QLearning{
		ID:           uuid.New().String(),
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// LoadOrNewQLearning resumes the agent saved at path, or starts a fresh one
// when there is nothing to resume.
func LoadOrNewQLearning(path string, seed uint64) (*QLearning, error) {
	q := NewQLearning(seed)
	err := q.LoadQTable(path)
	if errors.Is(err, os.ErrNotExist) {
		return q, nil
	}
	return q, err
}

// SaveQTable writes the table to filename, replacing it atomically
func (q *QLearning) SaveQTable(filename string) error {
	q.mu.RLock()
	data, err := json.MarshalIndent(snapshot{ID: q.ID, GamesPlayed: q.GamesPlayed, QTable: q.QTable}, "", "  ")
	q.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode q-table: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create q-table dir: %w", err)
	}
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write q-table: %w", err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("replace q-table: %w", err)
	}
	return nil
}

func (q *QLearning) LoadQTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	var saved snapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("decode q-table %s: %w", filename, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if saved.ID != "" {
		q.ID = saved.ID
	}
	q.GamesPlayed = saved.GamesPlayed
	if saved.QTable != nil {
		q.QTable = saved.QTable
	}
	return nil
}

// GetAction picks an epsilon-greedy action. The reverse of the current
// heading is never chosen since the game would drop it anyway.
func (q *QLearning) GetAction(state State) Action {
	allowed := make([]Action, 0, 3)
	for a := Up; a <= Left; a++ {
		if a != state.Heading.Opposite() {
			allowed = append(allowed, a)
		}
	}

	if q.rng.Float64() < q.Epsilon {
		return allowed[q.rng.Intn(len(allowed))]
	}
	return q.bestAction(state, allowed)
}

func (q *QLearning) bestAction(state State, allowed []Action) Action {
	q.mu.RLock()
	defer q.mu.RUnlock()

	row := q.QTable[state.Key()]
	best := allowed[0]
	bestValue := math.Inf(-1)
	for _, a := range allowed {
		value := row[a]
		// unexplored safe moves beat known-bad ones
		if value > bestValue || (value == bestValue && !state.DangerDirs[a] && state.DangerDirs[best]) {
			bestValue = value
			best = a
		}
	}
	return best
}

// Reward scores the move from state to next. done marks the end of a run.
func Reward(state State, action Action, next State, ate, done bool) float64 {
	switch {
	case done:
		return RewardDeath
	case ate:
		return RewardFood
	case state.DangerDirs[action]:
		return RewardDanger
	}

	var reward float64
	if change := next.FoodDistance - state.FoodDistance; change < 0 {
		reward = RewardCloser
	} else if change > 0 {
		reward = RewardFarther
	}
	return reward
}

// Update applies the Q-learning rule for one transition. A terminal
// transition has no future value.
func (q *QLearning) Update(state State, action Action, reward float64, next State, done bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := state.Key()
	if _, exists := q.QTable[key]; !exists {
		q.QTable[key] = make(map[Action]float64)
	}

	var maxNextQ float64
	if !done {
		maxNextQ = math.Inf(-1)
		nextRow := q.QTable[next.Key()]
		for a := Up; a <= Left; a++ {
			maxNextQ = math.Max(maxNextQ, nextRow[a])
		}
	}

	currentQ := q.QTable[key][action]
	q.QTable[key][action] = currentQ + q.LearningRate*(reward+q.Discount*maxNextQ-currentQ)
	q.TotalReward += reward
}

func (q *QLearning) EndGame() {
	q.mu.Lock()
	q.GamesPlayed++
	q.mu.Unlock()
}

func (q *QLearning) Games() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.GamesPlayed
}
