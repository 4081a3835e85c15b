package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Model file loading
	LoadInfo             Code = 1000
	LoadUnknownClass     Code = 1001
	LoadUnknownInterface Code = 1002
	LoadUnknownRole      Code = 1003
	LoadDuplicateName    Code = 1004
	LoadBadParameter     Code = 1005
	LoadBadVisibility    Code = 1006
	LoadBadKind          Code = 1007
	LoadRankOverflow     Code = 1008

	// Structural flattening
	FlatInfo            Code = 2000
	FlatDanglingEnd     Code = 2001
	FlatSelfGeneralize  Code = 2002
	FlatEmptyClassifier Code = 2003

	// Trace replay
	TrcInfo             Code = 3000
	TrcOrphanReturn     Code = 3001
	TrcForeignCaller    Code = 3002
	TrcActorWhileFocus  Code = 3003
	TrcDuplicateRank    Code = 3004
	TrcNoTarget         Code = 3005
	TrcExternalTarget   Code = 3006
	TrcReflectiveTarget Code = 3007
	TrcDetachedBody     Code = 3008

	// Generation
	GenInfo        Code = 4000
	GenInvalidName Code = 4001
	GenIOFailure   Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		LoadInfo:             "Model file information",
		LoadUnknownClass:     "Unknown class",
		LoadUnknownInterface: "Unknown interface",
		LoadUnknownRole:      "Unknown participant",
		LoadDuplicateName:    "Duplicate classifier name",
		LoadBadParameter:     "Malformed parameter",
		LoadBadVisibility:    "Unknown visibility",
		LoadBadKind:          "Unknown element kind",
		LoadRankOverflow:     "Rank out of range",
		FlatInfo:             "Flattening information",
		FlatDanglingEnd:      "Relationship end without classifier",
		FlatSelfGeneralize:   "Class generalizes itself",
		FlatEmptyClassifier:  "Classifier without name",
		TrcInfo:              "Trace information",
		TrcOrphanReturn:      "Return without an open call",
		TrcForeignCaller:     "Caller does not hold the focus of control",
		TrcActorWhileFocus:   "Actor message while a lifeline is open",
		TrcDuplicateRank:     "Duplicate message rank",
		TrcNoTarget:          "Message without target",
		TrcExternalTarget:    "Message to a non-generated participant",
		TrcReflectiveTarget:  "Reflective message to another participant",
		TrcDetachedBody:      "Message sent inside a collection call",
		GenInfo:              "Generation information",
		GenInvalidName:       "Classifier name is empty",
		GenIOFailure:         "Output could not be written",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LOD%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FLT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
