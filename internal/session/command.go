package session

import (
	"fmt"
	"strings"
)

// Command is a parsed user action. Each variant maps to exactly one State
// entry point or one controller action; input handling never touches State
// directly.
type Command interface {
	isCommand()
}

type (
	// CmdCoin sets the coin filter ("all", "btc", ...).
	CmdCoin struct{ Coin string }
	// CmdView switches between overview and top-performers.
	CmdView struct{ View View }
	// CmdRange sets the chart time range.
	CmdRange struct{ Range TimeRange }
	// CmdSearch sets the search term (empty string clears it).
	CmdSearch struct{ Term string }
	// CmdSort selects or toggles a sort column.
	CmdSort struct{ Column SortColumn }
	// CmdChart toggles chart visibility.
	CmdChart struct{}
	// CmdLogScale toggles log/linear chart scale.
	CmdLogScale struct{}
	// CmdTheme sets the theme preference.
	CmdTheme struct{ Theme string }
	// CmdAccent sets the accent-color preference.
	CmdAccent struct{ Accent string }
	// CmdRefresh requests an immediate user-initiated fetch.
	CmdRefresh struct{}
	// CmdSelect navigates to the detail view for one strategy.
	CmdSelect struct {
		Bucket string
		TSID   string
	}
	// CmdBack leaves the detail view.
	CmdBack struct{}
	// CmdQuit ends the session.
	CmdQuit struct{}
)

func (CmdCoin) isCommand()     {}
func (CmdView) isCommand()     {}
func (CmdRange) isCommand()    {}
func (CmdSearch) isCommand()   {}
func (CmdSort) isCommand()     {}
func (CmdChart) isCommand()    {}
func (CmdLogScale) isCommand() {}
func (CmdTheme) isCommand()    {}
func (CmdAccent) isCommand()   {}
func (CmdRefresh) isCommand()  {}
func (CmdSelect) isCommand()   {}
func (CmdBack) isCommand()     {}
func (CmdQuit) isCommand()     {}

var sortColumns = map[string]SortColumn{
	"symbol":    ColSymbol,
	"bucket":    ColBucket,
	"pair":      ColPair,
	"freshness": ColFreshness,
	"price":     ColPrice,
	"position":  ColPosition,
	"return":    ColReturn,
	"change24h": ColChange24h,
	"24h":       ColChange24h,
	"change7d":  ColChange7d,
	"7d":        ColChange7d,
	"maxreturn": ColMaxReturn,
	"streak":    ColStreak,
}

var timeRanges = map[string]TimeRange{
	"1d":  Range1D,
	"1w":  Range1W,
	"1m":  Range1M,
	"3m":  Range3M,
	"all": RangeAll,
}

// Parse turns one input line into a Command. The grammar is
// "verb [argument...]"; verbs are case-insensitive.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "coin":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: coin <all|btc|eth|sol|ltc>")
		}
		return CmdCoin{Coin: strings.ToLower(args[0])}, nil
	case "view":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: view <overview|top>")
		}
		switch strings.ToLower(args[0]) {
		case "overview":
			return CmdView{View: ViewOverview}, nil
		case "top":
			return CmdView{View: ViewTop}, nil
		}
		return nil, fmt.Errorf("unknown view %q", args[0])
	case "range":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: range <1d|1w|1m|3m|all>")
		}
		r, ok := timeRanges[strings.ToLower(args[0])]
		if !ok {
			return nil, fmt.Errorf("unknown range %q", args[0])
		}
		return CmdRange{Range: r}, nil
	case "search":
		// No argument clears the search.
		return CmdSearch{Term: strings.Join(args, " ")}, nil
	case "sort":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: sort <column>")
		}
		col, ok := sortColumns[strings.ToLower(args[0])]
		if !ok {
			return nil, fmt.Errorf("unknown sort column %q", args[0])
		}
		return CmdSort{Column: col}, nil
	case "chart":
		return CmdChart{}, nil
	case "log":
		return CmdLogScale{}, nil
	case "theme":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: theme <name>")
		}
		return CmdTheme{Theme: strings.ToLower(args[0])}, nil
	case "accent":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: accent <name>")
		}
		return CmdAccent{Accent: strings.ToLower(args[0])}, nil
	case "refresh", "r":
		return CmdRefresh{}, nil
	case "select":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: select <bucket> <ts-id>")
		}
		return CmdSelect{Bucket: args[0], TSID: strings.TrimPrefix(args[1], "TS-")}, nil
	case "back", "b":
		return CmdBack{}, nil
	case "quit", "q", "exit":
		return CmdQuit{}, nil
	}
	return nil, fmt.Errorf("unknown command %q", verb)
}
