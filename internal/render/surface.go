package render

import (
	"github.com/dgnsrekt/pulseboard/internal/derive"
	"github.com/dgnsrekt/pulseboard/internal/model"
)

// StatusLine is the header status display: sync state plus the advisory
// countdown to the next backend sync.
type StatusLine struct {
	SyncState model.SyncState
	Countdown string
	Coin      string
	View      string
	Range     string
	Search    string
}

// Surface is the rendering target. The reconciliation engine is surface
// independent; the terminal implementation and the recording implementation
// used in tests both satisfy it.
type Surface interface {
	BeginFrame()
	ShowSkeleton()
	SetStatus(status StatusLine)
	SetStats(scope string, fields []FieldUpdate)
	SetTable(header []string, rows []RowView)
	SetLeaderboards(boards []derive.Leaderboard)
	SetChart(view ChartView)
	SetDetail(data *model.StrategyData)
	Flush() error
}

// Frame captures one rendered frame on a RecordingSurface.
type Frame struct {
	Skeleton     bool
	Status       StatusLine
	StatsScope   string
	Stats        []FieldUpdate
	Header       []string
	Rows         []RowView
	Leaderboards []derive.Leaderboard
	Chart        *ChartView
	Detail       *model.StrategyData
}

// RecordingSurface accumulates frames instead of drawing them. Tests inspect
// the recorded frames to assert on reconciliation behavior.
type RecordingSurface struct {
	Frames  []Frame
	current Frame
}

func (s *RecordingSurface) BeginFrame() { s.current = Frame{} }

func (s *RecordingSurface) ShowSkeleton() { s.current.Skeleton = true }

func (s *RecordingSurface) SetStatus(status StatusLine) { s.current.Status = status }

func (s *RecordingSurface) SetStats(scope string, fields []FieldUpdate) {
	s.current.StatsScope = scope
	s.current.Stats = fields
}

func (s *RecordingSurface) SetTable(header []string, rows []RowView) {
	s.current.Header = header
	s.current.Rows = rows
}

func (s *RecordingSurface) SetLeaderboards(boards []derive.Leaderboard) {
	s.current.Leaderboards = boards
}

func (s *RecordingSurface) SetChart(view ChartView) { s.current.Chart = &view }

func (s *RecordingSurface) SetDetail(data *model.StrategyData) { s.current.Detail = data }

func (s *RecordingSurface) Flush() error {
	s.Frames = append(s.Frames, s.current)
	return nil
}

// Last returns the most recently flushed frame.
func (s *RecordingSurface) Last() Frame {
	if len(s.Frames) == 0 {
		return Frame{}
	}
	return s.Frames[len(s.Frames)-1]
}
