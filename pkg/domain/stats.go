package domain

import "time"

// StatsKey is the fixed key aggregate statistics are stored under.
const StatsKey = "memoryGameStats"

// Stats are aggregate play statistics kept across sessions.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	TotalMoves  int `json:"total_moves"`
	TotalTime   int `json:"total_time"` // seconds
	BestTime    int `json:"best_time,omitempty"`
	BestMoves   int `json:"best_moves,omitempty"`
	// DailyStreak counts consecutive days with a completed daily challenge.
	DailyStreak int       `json:"daily_streak,omitempty"`
	LastDaily   time.Time `json:"last_daily,omitempty"`
}

// GameResult summarizes one completed play-through.
type GameResult struct {
	GameID     string
	Difficulty string
	Theme      string
	Daily      bool
	Moves      int
	Seconds    int
	FinishedAt time.Time
}

// Record folds a completed game into the stats. Best values only improve.
func (s Stats) Record(r GameResult) Stats {
	s.GamesPlayed++
	s.TotalMoves += r.Moves
	s.TotalTime += r.Seconds
	if r.Seconds > 0 && (s.BestTime == 0 || r.Seconds < s.BestTime) {
		s.BestTime = r.Seconds
	}
	if r.Moves > 0 && (s.BestMoves == 0 || r.Moves < s.BestMoves) {
		s.BestMoves = r.Moves
	}
	if r.Daily && !r.FinishedAt.IsZero() {
		day := truncateDay(r.FinishedAt)
		last := truncateDay(s.LastDaily)
		switch {
		case s.LastDaily.IsZero():
			s.DailyStreak = 1
		case day.Equal(last):
			// same day, streak unchanged
		case day.Equal(last.AddDate(0, 0, 1)):
			s.DailyStreak++
		default:
			s.DailyStreak = 1
		}
		s.LastDaily = r.FinishedAt.UTC()
	}
	return s
}

// AverageMoves returns the mean moves per completed game.
func (s Stats) AverageMoves() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.GamesPlayed)
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
