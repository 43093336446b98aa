package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dgnsrekt/pulseboard/internal/derive"
	"github.com/dgnsrekt/pulseboard/internal/model"
)

const (
	ansiReset  = "\x1b[0m"
	ansiClear  = "\x1b[2J\x1b[H"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
	ansiBold   = "\x1b[1m"
)

// TermSurface renders frames as ANSI text. Each Flush repaints the whole
// screen from the buffered frame; the previous-value cache, not the screen,
// is the diffing state.
type TermSurface struct {
	out   io.Writer
	frame Frame
}

// NewTermSurface builds a terminal surface writing to out.
func NewTermSurface(out io.Writer) *TermSurface {
	return &TermSurface{out: out}
}

func (s *TermSurface) BeginFrame() { s.frame = Frame{} }

func (s *TermSurface) ShowSkeleton() { s.frame.Skeleton = true }

func (s *TermSurface) SetStatus(status StatusLine) { s.frame.Status = status }

func (s *TermSurface) SetChart(view ChartView) { s.frame.Chart = &view }

func (s *TermSurface) SetDetail(d *model.StrategyData) { s.frame.Detail = d }

func (s *TermSurface) SetStats(scope string, fields []FieldUpdate) {
	s.frame.StatsScope = scope
	s.frame.Stats = fields
}

func (s *TermSurface) SetTable(header []string, rows []RowView) {
	s.frame.Header = header
	s.frame.Rows = rows
}

func (s *TermSurface) SetLeaderboards(boards []derive.Leaderboard) {
	s.frame.Leaderboards = boards
}

func colorFor(class string) string {
	switch class {
	case "positive":
		return ansiGreen
	case "negative":
		return ansiRed
	case "warning":
		return ansiYellow
	default:
		return ""
	}
}

func paint(text, class string) string {
	c := colorFor(class)
	if c == "" {
		return text
	}
	return c + text + ansiReset
}

func arrowFor(d Direction) string {
	switch d {
	case DirectionUp:
		return " ↑"
	case DirectionDown:
		return " ↓"
	default:
		return ""
	}
}

// Counter roll: changed numeric stat fields repaint through interpolated
// values before landing on the final one.
const (
	counterFrameCount    = 6
	counterFrameInterval = 25 * time.Millisecond
)

// Flush paints the buffered frame, preceded by interpolation frames when any
// numeric stat counter changed.
func (s *TermSurface) Flush() error {
	for _, frame := range s.interpolationFrames() {
		if err := s.write(frame); err != nil {
			return err
		}
		time.Sleep(counterFrameInterval)
	}
	return s.write(s.frame)
}

// interpolationFrames builds intermediate frames that roll each changed
// numeric stat field from its previous value toward the new one. Frames with
// no moving counter yield nil.
func (s *TermSurface) interpolationFrames() []Frame {
	steps := make(map[int][]float64)
	for i, f := range s.frame.Stats {
		if f.Numeric && f.Changed {
			steps[i] = CounterSteps(f.Old, f.Value, counterFrameCount)
		}
	}
	if len(steps) == 0 {
		return nil
	}

	frames := make([]Frame, 0, counterFrameCount-1)
	for k := 0; k < counterFrameCount-1; k++ {
		frame := s.frame
		frame.Stats = append([]FieldUpdate(nil), s.frame.Stats...)
		for i, values := range steps {
			f := frame.Stats[i]
			f.Value = values[k]
			f.Text = formatLike(s.frame.Stats[i].Text, values[k])
			frame.Stats[i] = f
		}
		frames = append(frames, frame)
	}
	return frames
}

// formatLike renders an interpolated value in the style of the field's final
// text: percent fields keep sign and suffix, counts stay integral.
func formatLike(final string, v float64) string {
	if strings.HasSuffix(final, "%") {
		return FormatPercent(v)
	}
	if strings.Contains(final, ".") {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

func (s *TermSurface) write(frame Frame) error {
	var b strings.Builder
	b.WriteString(ansiClear)

	st := frame.Status
	fmt.Fprintf(&b, "%spulseboard%s  sync: %s  next sync: %s  coin: %s  view: %s  range: %s",
		ansiBold, ansiReset, st.SyncState, st.Countdown, st.Coin, st.View, st.Range)
	if st.Search != "" {
		fmt.Fprintf(&b, "  search: %q", st.Search)
	}
	b.WriteString("\n\n")

	if frame.Skeleton {
		b.WriteString(ansiDim)
		b.WriteString("  ░░░░░░  ░░░░░░  ░░░░░░  ░░░░░░  ░░░░░░\n\n")
		for i := 0; i < 6; i++ {
			b.WriteString("  ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░\n")
		}
		b.WriteString(ansiReset)
		_, err := io.WriteString(s.out, b.String())
		return err
	}

	if frame.Detail != nil {
		s.writeDetail(&b, frame.Detail)
		_, err := io.WriteString(s.out, b.String())
		return err
	}

	if len(frame.Stats) > 0 {
		for _, f := range frame.Stats {
			cell := paint(f.Text, f.Class) + arrowFor(f.Direction)
			fmt.Fprintf(&b, "  %s=%s", f.Key.Field, cell)
		}
		b.WriteString("\n\n")
	}

	if len(frame.Header) > 0 {
		b.WriteString("  " + strings.Join(frame.Header, "  ") + "\n")
		for _, row := range frame.Rows {
			cells := make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				class := "neutral"
				if i < len(row.Classes) {
					class = row.Classes[i]
				}
				cells[i] = paint(cell, class)
			}
			marker := "  "
			if row.Entering {
				marker = "+ "
			}
			b.WriteString(marker + strings.Join(cells, "  ") + "\n")
		}
		if len(frame.Rows) == 0 {
			b.WriteString(ansiDim + "  (no rows match the current filters)" + ansiReset + "\n")
		}
		b.WriteString("\n")
	}

	for _, board := range frame.Leaderboards {
		fmt.Fprintf(&b, "  %s%s%s\n", ansiBold, board.Title, ansiReset)
		if board.Empty {
			b.WriteString(ansiDim + "    no data" + ansiReset + "\n")
			continue
		}
		for i, e := range board.Entries {
			fmt.Fprintf(&b, "    %d. %s %s TS-%s  %s\n",
				i+1, e.Symbol, e.Bucket, e.TSID, paint(FormatPercent(e.CumulativeReturn), ClassFor(e.CumulativeReturn)))
		}
	}
	if len(frame.Leaderboards) > 0 {
		b.WriteString("\n")
	}

	if frame.Chart != nil {
		for _, line := range frame.Chart.RenderASCII() {
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *TermSurface) writeDetail(b *strings.Builder, d *model.StrategyData) {
	fmt.Fprintf(b, "  %s%s %s%s\n\n", ansiBold, d.Symbol, d.Bucket, ansiReset)
	m := d.Metrics
	fmt.Fprintf(b, "  last price        %s\n", FormatPrice(m.LastPrice))
	fmt.Fprintf(b, "  position          %s\n", model.PositionFromValue(m.LastPosition))
	fmt.Fprintf(b, "  cumulative return %s\n", paint(FormatPercent(m.CumulativeReturn), ClassFor(m.CumulativeReturn)))
	fmt.Fprintf(b, "  max return        %s\n", paint(FormatPercent(m.MaxReturn), ClassFor(m.MaxReturn)))
	fmt.Fprintf(b, "  after fees        %s (max %s, fees %.4f)\n",
		paint(FormatPercent(m.CumulativeReturnAfterFees), ClassFor(m.CumulativeReturnAfterFees)),
		FormatPercent(m.MaxReturnAfterFees), m.TotalFees)
	fmt.Fprintf(b, "  points            %d of %d\n", m.DisplayedPoints, m.TotalPoints)
	fmt.Fprintf(b, "  last update       %s\n", m.LastTimestamp)
	b.WriteString("\n  (back to return)\n")
}
