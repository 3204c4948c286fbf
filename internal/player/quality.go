package player

import (
	"errors"
	"fmt"
	"strconv"
)

// LevelID is either Auto or the zero-based index of a variant stream.
type LevelID int

const Auto LevelID = -1

var ErrUnknownLevel = errors.New("unknown quality level")

func (id LevelID) String() string {
	if id == Auto {
		return "auto"
	}
	return strconv.Itoa(int(id))
}

func (id LevelID) MarshalJSON() ([]byte, error) {
	if id == Auto {
		return []byte(`"auto"`), nil
	}
	return []byte(strconv.Itoa(int(id))), nil
}

func ParseLevelID(s string) (LevelID, error) {
	if s == "" || s == "auto" {
		return Auto, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Auto, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return LevelID(n), nil
}

type Level struct {
	ID      LevelID `json:"id"`
	Label   string  `json:"label"`
	Height  int     `json:"height,omitempty"`
	Width   int     `json:"width,omitempty"`
	Bitrate int     `json:"bitrate,omitempty"`
}

func autoLevel() Level {
	return Level{ID: Auto, Label: "Auto"}
}

func levelLabel(height, bitrate int) string {
	switch {
	case height > 0:
		return fmt.Sprintf("%dp", height)
	case bitrate > 0:
		return fmt.Sprintf("%d kbps", bitrate/1000)
	default:
		return "Unknown"
	}
}

// QualityState is the selector model for one segmented stream. Levels always
// starts with the synthetic Auto entry.
type QualityState struct {
	Levels   []Level `json:"levels"`
	Selected LevelID `json:"selected"`
}

func NewQualityState(variants []Level) QualityState {
	levels := make([]Level, 0, len(variants)+1)
	levels = append(levels, autoLevel())
	levels = append(levels, variants...)
	return QualityState{Levels: levels, Selected: Auto}
}

func (q QualityState) IsAuto() bool {
	return q.Selected == Auto
}

// Select pins a concrete level or restores automatic selection. Selecting
// the current level returns an equal state.
func (q QualityState) Select(id LevelID) (QualityState, error) {
	if !q.has(id) {
		return q, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
	}
	next := q
	next.Levels = append([]Level(nil), q.Levels...)
	next.Selected = id
	return next, nil
}

func (q QualityState) has(id LevelID) bool {
	for _, l := range q.Levels {
		if l.ID == id {
			return true
		}
	}
	return false
}
