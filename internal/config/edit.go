package config

import (
	"fmt"
	"strings"
)

// UnknownUnitTypeError means an edit named a unit type that does not exist.
type UnknownUnitTypeError struct {
	Name string
}

func (e *UnknownUnitTypeError) Error() string {
	return fmt.Sprintf("unknown unit type %q", e.Name)
}

// AppendGroup adds group to the end of a unit type's groups.
func AppendGroup(cfg *Config, unitType string, group ButtonGroup) error {
	ut := cfg.UnitType(unitType)
	if ut == nil {
		return &UnknownUnitTypeError{Name: unitType}
	}

	group.Title = strings.TrimSpace(group.Title)
	if group.Title == "" {
		return &ValidationError{Problems: []string{"group title is required"}}
	}
	if group.GroupType != "" && !group.GroupType.Valid() {
		return &ValidationError{Problems: []string{fmt.Sprintf("unknown group_type %q", group.GroupType)}}
	}
	for _, g := range ut.ButtonGroups {
		if g.Title == group.Title {
			return &ValidationError{Problems: []string{
				fmt.Sprintf("unit type %q already has a group titled %q", unitType, group.Title),
			}}
		}
	}

	group = group.Clone()
	verr := &ValidationError{}
	for i, b := range group.Buttons {
		validateButton(verr, fmt.Sprintf("button %d", i+1), b)
	}
	if len(verr.Problems) > 0 {
		return verr
	}

	ut.ButtonGroups = append(ut.ButtonGroups, group)
	return nil
}

// AppendCommand adds button to the end of the group at groupIndex.
func AppendCommand(cfg *Config, unitType string, groupIndex int, button Button) error {
	ut := cfg.UnitType(unitType)
	if ut == nil {
		return &UnknownUnitTypeError{Name: unitType}
	}
	if groupIndex < 0 || groupIndex >= len(ut.ButtonGroups) {
		return fmt.Errorf("group index %d out of range (unit type %q has %d groups)",
			groupIndex, unitType, len(ut.ButtonGroups))
	}

	verr := &ValidationError{}
	validateButton(verr, "new button", button)
	if len(verr.Problems) > 0 {
		return verr
	}

	g := &ut.ButtonGroups[groupIndex]
	g.Buttons = append(g.Buttons, button.Clone())
	return nil
}

// AddUnitType creates an empty unit type.
func AddUnitType(cfg *Config, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Problems: []string{"unit type name is required"}}
	}
	if _, exists := cfg.UnitTypes[name]; exists {
		return &ValidationError{Problems: []string{fmt.Sprintf("unit type %q already exists", name)}}
	}
	if cfg.UnitTypes == nil {
		cfg.UnitTypes = make(map[string]*UnitType)
	}
	cfg.UnitTypes[name] = &UnitType{Description: description, ButtonGroups: []ButtonGroup{}}
	return nil
}
