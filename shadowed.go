package godiopts

import (
	"fmt"
	"reflect"
)

// CreatorInfo describes one registered creator for diagnostics.
type CreatorInfo struct {
	Index int
	Func  string
	File  string
	Line  int
	Type  string
	Name  string
}

// ShadowInfo reports a creator that can never run: an earlier creator
// already claims its (type, name) slot and resolution is first-wins.
type ShadowInfo struct {
	Key      string
	Active   CreatorInfo
	Shadowed CreatorInfo
}

type creatorSlot struct {
	t    reflect.Type
	name string
}

// DetectShadowed scans registrations for dead creators. Registering a
// duplicate (type, name) creator is a caller error; this surfaces it with
// source provenance instead of silently ignoring the later one.
func DetectShadowed(regs []Registration) []ShadowInfo {
	active := map[creatorSlot]CreatorInfo{}
	shadowed := make([]ShadowInfo, 0)

	for i, reg := range regs {
		if reg.kind != registrationCreator || reg.name == nil {
			continue
		}

		slot := creatorSlot{t: reg.typ, name: *reg.name}
		info := describeCreator(reg, i)
		if prev, ok := active[slot]; ok {
			shadowed = append(shadowed, ShadowInfo{
				Key:      creatorSlotLabel(slot),
				Active:   prev,
				Shadowed: info,
			})
			continue
		}
		active[slot] = info
	}

	return shadowed
}

func describeCreator(reg Registration, index int) CreatorInfo {
	info := CreatorInfo{Index: index}

	if reg.typ != nil {
		info.Type = reg.typ.String()
	}
	if reg.name != nil {
		info.Name = *reg.name
	}
	if reg.fn != nil {
		name, file, line := funcLocation(reg.fn)
		info.Func = name
		info.File = file
		info.Line = line
	}

	return info
}

func creatorSlotLabel(slot creatorSlot) string {
	return fmt.Sprintf("%s %s", slot.t, nameLabel(slot.name))
}
