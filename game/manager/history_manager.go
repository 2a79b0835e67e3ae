package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"snake-deluxe/game/types"
)

// GroupSize is how many records of one compression level are folded into a
// single summary record
const GroupSize = 100

// RunRecord describes one finished run, or a group of folded runs when
// CompressionIndex is above zero.
type RunRecord struct {
	ID         string           `json:"id"`
	StartTime  time.Time        `json:"startTime"`
	EndTime    time.Time        `json:"endTime"`
	Score      int              `json:"score"`
	Length     int              `json:"length"`
	Ticks      int              `json:"ticks"`
	Difficulty types.Difficulty `json:"difficulty"`
	// Played excludes paused time
	Played time.Duration `json:"played"`

	CompressionIndex int     `json:"compressionIndex"`
	GamesCount       int     `json:"gamesCount"`
	AverageScore     float64 `json:"averageScore"`
	MedianScore      float64 `json:"medianScore"`
	MaxScore         int     `json:"maxScore"`
	MinScore         int     `json:"minScore"`
	AveragePlayed    float64 `json:"averagePlayed"`
}

// Summary aggregates every run ever recorded
type Summary struct {
	Games         int
	AverageScore  float64
	MedianScore   float64
	MaxScore      int
	AveragePlayed time.Duration
}

// HistoryManager keeps the run history on disk. Old runs are folded into
// group records so the file stays small.
type HistoryManager struct {
	path  string
	runs  []RunRecord
	mutex sync.RWMutex
}

// NewHistoryManager loads the history at path. A missing or unreadable file
// starts an empty history.
func NewHistoryManager(path string) *HistoryManager {
	hm := &HistoryManager{
		path: path,
		runs: make([]RunRecord, 0),
	}
	if err := hm.load(); err != nil {
		log.Printf("Warning: starting with empty run history: %v", err)
	}
	return hm
}

// Record adds a finished run and saves the history. Save failures are
// logged.
func (hm *HistoryManager) Record(run RunRecord) {
	hm.mutex.Lock()
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CompressionIndex = 0
	run.GamesCount = 1
	run.AverageScore = float64(run.Score)
	run.MedianScore = float64(run.Score)
	run.MaxScore = run.Score
	run.MinScore = run.Score
	run.AveragePlayed = run.Played.Seconds()
	hm.runs = append(hm.runs, run)
	hm.groupRuns()
	hm.mutex.Unlock()

	if err := hm.Save(); err != nil {
		log.Printf("Warning: could not save run history: %v", err)
	}
}

// groupRuns folds every full block of GroupSize records at one compression
// level into a single record of the next level
func (hm *HistoryManager) groupRuns() {
	sort.SliceStable(hm.runs, func(i, j int) bool {
		if hm.runs[i].CompressionIndex != hm.runs[j].CompressionIndex {
			return hm.runs[i].CompressionIndex < hm.runs[j].CompressionIndex
		}
		return hm.runs[i].StartTime.Before(hm.runs[j].StartTime)
	})

	for level := 0; ; level++ {
		var records []RunRecord
		for _, run := range hm.runs {
			if run.CompressionIndex == level {
				records = append(records, run)
			}
		}
		if len(records) < GroupSize {
			return
		}

		var folded []RunRecord
		for i := 0; i < len(records); i += GroupSize {
			end := i + GroupSize
			if end > len(records) {
				folded = append(folded, records[i:]...)
				break
			}
			folded = append(folded, foldGroup(records[i:end], level+1))
		}

		remaining := make([]RunRecord, 0, len(hm.runs))
		for _, run := range hm.runs {
			if run.CompressionIndex != level {
				remaining = append(remaining, run)
			}
		}
		hm.runs = append(remaining, folded...)
	}
}

func foldGroup(group []RunRecord, level int) RunRecord {
	out := RunRecord{
		ID:               uuid.New().String(),
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		Difficulty:       group[0].Difficulty,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
	}

	var totalScore, totalPlayed float64
	for _, g := range group {
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		if g.Difficulty != out.Difficulty {
			out.Difficulty = ""
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalPlayed += g.AveragePlayed * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
	}

	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AveragePlayed = totalPlayed / float64(out.GamesCount)
	out.MedianScore = weightedMedian(group)
	out.Score = out.MaxScore
	return out
}

// weightedMedian treats each record's median as repeated GamesCount times
func weightedMedian(runs []RunRecord) float64 {
	scores := make([]float64, 0, len(runs))
	for _, run := range runs {
		for i := 0; i < run.GamesCount; i++ {
			scores = append(scores, run.MedianScore)
		}
	}
	if len(scores) == 0 {
		return 0
	}
	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return (scores[mid-1] + scores[mid]) / 2
	}
	return scores[mid]
}

// Runs returns a copy of the stored records
func (hm *HistoryManager) Runs() []RunRecord {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	out := make([]RunRecord, len(hm.runs))
	copy(out, hm.runs)
	return out
}

func (hm *HistoryManager) Summary() Summary {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	var s Summary
	if len(hm.runs) == 0 {
		return s
	}

	var totalScore, totalPlayed float64
	s.MaxScore = hm.runs[0].MaxScore
	for _, run := range hm.runs {
		totalScore += run.AverageScore * float64(run.GamesCount)
		totalPlayed += run.AveragePlayed * float64(run.GamesCount)
		s.Games += run.GamesCount
		s.MaxScore = max(s.MaxScore, run.MaxScore)
	}
	s.AverageScore = totalScore / float64(s.Games)
	s.AveragePlayed = time.Duration(totalPlayed / float64(s.Games) * float64(time.Second))
	s.MedianScore = weightedMedian(hm.runs)
	return s
}

// Save writes the history as JSON
func (hm *HistoryManager) Save() error {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(hm.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.Marshal(hm.runs)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(hm.path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func (hm *HistoryManager) load() error {
	data, err := os.ReadFile(hm.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	var runs []RunRecord
	if err := json.Unmarshal(data, &runs); err != nil {
		return fmt.Errorf("decode history %s: %w", hm.path, err)
	}
	hm.runs = runs
	return nil
}
