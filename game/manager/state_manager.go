package manager

import (
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"

	"snake-deluxe/game/types"
)

const (
	HighScoreKey   = "snakeHighScoreDeluxe"
	LeaderboardKey = "snakeLeaderboardDeluxe"
	PlayerNameKey  = "snakePlayerName"
)

type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// StateManager persists high score, leaderboard and player name. Store
// failures are logged and otherwise ignored: reads fall back to "no data",
// writes keep the in-memory value for the rest of the session.
type StateManager struct {
	store       Store
	highScore   int
	leaderboard []LeaderboardEntry
	playerName  string
}

func NewStateManager(store Store) *StateManager {
	sm := &StateManager{
		store:       store,
		leaderboard: make([]LeaderboardEntry, 0),
	}
	sm.load()
	return sm
}

func (sm *StateManager) load() {
	if raw, ok := sm.get(HighScoreKey); ok {
		if score, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && score > 0 {
			sm.highScore = score
		}
	}

	if raw, ok := sm.get(LeaderboardKey); ok {
		var entries []LeaderboardEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			log.Printf("Warning: discarding malformed leaderboard: %v", err)
		} else {
			sm.leaderboard = normalizeLeaderboard(entries)
		}
	}

	if raw, ok := sm.get(PlayerNameKey); ok {
		sm.playerName = raw
	}
}

func (sm *StateManager) get(key string) (string, bool) {
	raw, err := sm.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Warning: could not read %s: %v", key, err)
		}
		return "", false
	}
	return raw, true
}

func (sm *StateManager) set(key, value string) {
	if err := sm.store.Set(key, value); err != nil {
		log.Printf("Warning: could not save %s: %v", key, err)
	}
}

func (sm *StateManager) HighScore() int {
	return sm.highScore
}

func (sm *StateManager) SetHighScore(score int) {
	sm.highScore = max(0, score)
	sm.set(HighScoreKey, strconv.Itoa(sm.highScore))
}

// UpdateScore raises the high score if score beats it
func (sm *StateManager) UpdateScore(score int) bool {
	if score <= sm.highScore {
		return false
	}
	sm.SetHighScore(score)
	return true
}

func (sm *StateManager) Leaderboard() []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(sm.leaderboard))
	copy(out, sm.leaderboard)
	return out
}

func (sm *StateManager) SetLeaderboard(entries []LeaderboardEntry) {
	sm.leaderboard = normalizeLeaderboard(entries)
	data, err := json.Marshal(sm.leaderboard)
	if err != nil {
		log.Printf("Warning: could not encode leaderboard: %v", err)
		return
	}
	sm.set(LeaderboardKey, string(data))
}

func (sm *StateManager) PlayerName() string {
	return sm.playerName
}

func (sm *StateManager) SetPlayerName(name string) {
	sm.playerName = name
	sm.set(PlayerNameKey, name)
}

// Submit records score under name, remembers the name for next time and
// returns the updated leaderboard.
func (sm *StateManager) Submit(name string, score int) []LeaderboardEntry {
	name = NormalizeName(name)
	sm.SetPlayerName(name)

	entries := append(sm.Leaderboard(), LeaderboardEntry{Name: name, Score: max(0, score)})
	sm.SetLeaderboard(entries)
	return sm.Leaderboard()
}

// NormalizeName uppercases and trims a player name to MaxNameLength runes.
// A blank name becomes DefaultPlayerName.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return types.DefaultPlayerName
	}
	runes := []rune(name)
	if len(runes) > types.MaxNameLength {
		runes = runes[:types.MaxNameLength]
	}
	return string(runes)
}

func normalizeLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.Score < 0 {
			e.Score = 0
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > types.MaxLeaderboardEntries {
		out = out[:types.MaxLeaderboardEntries]
	}
	return out
}
